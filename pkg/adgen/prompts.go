package adgen

const taglineTemplate = `Create a memorable and impactful tagline for an advertisement campaign based on the following elements:

Core Message:
%s

Visual Theme:
%s

Emotional Appeal:
%s

The tagline should be:
1. Concise and memorable (ideally 3-7 words)
2. Capture the essence of the core message
3. Evoke the desired emotional response
4. Align with the visual theme
5. Be distinctive and unique

Generate a single, powerful tagline that meets these criteria.`

const storyTemplate = `Create a compelling narrative for an advertisement campaign based on the following elements:

Core Message:
%s

Visual Theme:
%s

Emotional Appeal:
%s

The narrative should:
1. Tell a story that resonates with the target audience
2. Incorporate the core message naturally
3. Create vivid imagery that aligns with the visual theme
4. Evoke the intended emotional response
5. Be concise yet impactful (150-200 words)

Generate a narrative that weaves these elements together into a cohesive story.`

const imagePromptTemplate = `Create a detailed image generation prompt for an advertisement campaign titled "%s" based on the following elements:

Product Focus:
%s

Brand Elements:
%s

Social Media Considerations:
%s

The final image should:
1. Be visually striking and professional
2. Clearly communicate the intended message
3. Follow advertising best practices
4. Be suitable for the target platforms
5. Maintain brand consistency

Generate a detailed prompt that will produce an image meeting these criteria.`
