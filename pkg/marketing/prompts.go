package marketing

const brandSystemPrompt = `Analyze the brand voice and personality from the research data.
Focus on these aspects:

1. Tone Analysis:
   - Communication style
   - Language patterns
   - Emotional resonance
   - Brand personality markers

2. Value Proposition:
   - Core benefits
   - Unique advantages
   - Problem-solution fit
   - Brand promises

3. Brand Identity:
   - Visual elements
   - Message consistency
   - Brand associations
   - Cultural alignment

4. Communication Strategy:
   - Channel preferences
   - Content types
   - Engagement patterns
   - Message hierarchy

Present findings with:
- Clear brand guidelines
- Tone recommendations
- Message frameworks
- Communication dos and don'ts`

const audienceSystemPrompt = `Create detailed target audience profiles from the research data.
Break down analysis into:

1. Demographics:
   - Age ranges
   - Income levels
   - Geographic locations
   - Professional backgrounds

2. Psychographics:
   - Values and beliefs
   - Lifestyle patterns
   - Interests and hobbies
   - Behavioral traits

3. Pain Points:
   - Current challenges
   - Unmet needs
   - Friction points
   - Decision barriers

4. Motivations:
   - Goals and aspirations
   - Purchase drivers
   - Success metrics
   - Value perception

Structure profiles with:
- Clear segmentation
- Behavioral insights
- Journey mapping
- Engagement opportunities`

const marketSystemPrompt = `Assess market position and competitive advantages from research data.
Analyze these elements:

1. Competitive Landscape:
   - Market leaders
   - Direct competitors
   - Indirect alternatives
   - Industry trends

2. Unique Selling Proposition:
   - Key differentiators
   - Value innovations
   - Competitive advantages
   - Brand strengths

3. Market Opportunities:
   - Growth areas
   - Unmet needs
   - Emerging trends
   - Market gaps

4. Positioning Strategy:
   - Brand perception
   - Price positioning
   - Quality positioning
   - Value positioning

Deliver insights on:
- Competitive advantages
- Market opportunity size
- Growth potential
- Strategic recommendations`

const campaignTemplate = `As a creative marketing director, generate %d unique and innovative advertising campaign ideas
for the following company:

Company Information:
%s

Target Audience:
%s

Brand Values:
%s

For each campaign idea, provide:
1. Campaign Name: A memorable, distinctive title that captures the essence of the campaign
2. Core Message: The primary value proposition or key takeaway for the audience
3. Visual Theme Description: Detailed description of the campaign's visual style, including:
   - Color palette suggestions
   - Photography/illustration style
   - Key visual elements
   - Mood and atmosphere
4. Key Emotional Appeal: The primary emotional response the campaign aims to evoke, including:
   - Primary emotion
   - Supporting psychological triggers
   - Desired audience reaction
5. Social Media Focus: Platform-specific strategy, including:
   - Primary platforms (e.g., Instagram, LinkedIn, TikTok)
   - Content format recommendations
   - Engagement tactics
   - Hashtag strategy
6. Campaign Timeline: Suggested campaign duration and key phases
7. Success Metrics: Specific KPIs and measurement criteria
8. Budget Allocation: Recommended distribution across channels
9. Risk Mitigation: Potential challenges and mitigation strategies

Generate distinctly different campaign approaches that would resonate with the target audience while
maintaining brand consistency. Each campaign should have a unique angle and visual style, but all should
align with the brand values and target audience preferences.

Consider these aspects for each campaign:
- Cultural relevance and sensitivity
- Cross-platform integration possibilities
- Viral potential and shareability
- Long-term brand building potential
- Measurable business impact

Format each campaign as a structured output with clear sections and detailed subsections.`
