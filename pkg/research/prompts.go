package research

const questionSystemPrompt = `Generate comprehensive research questions about the company.
Break down questions into these categories:

1. Basic Company Information:
   - History and founding
   - Leadership and structure
   - Size and scale
   - Locations and markets

2. Brand Voice:
   - Communication style
   - Visual identity
   - Public messaging
   - Social media presence

3. Market Position:
   - Industry standing
   - Competitive advantages
   - Key differentiators
   - Growth trajectory

4. Target Audience:
   - Customer demographics
   - User personas
   - Market segments
   - Customer behavior patterns

Ensure questions are:
- Specific and focused
- Answerable through research
- Prioritized by importance
- Structured logically`

const analysisSystemPrompt = `Analyze the collected company data and structure it into a comprehensive profile.
Focus on these aspects:

1. Data Validation:
   - Cross-reference information
   - Identify consistency
   - Note confidence levels

2. Pattern Recognition:
   - Market trends
   - Growth indicators
   - Competitive positioning

3. Insights Generation:
   - Key strengths
   - Potential opportunities
   - Notable challenges

4. Profile Organization:
   - Clear hierarchy
   - Logical grouping
   - Easy navigation

Present findings with:
- Clear evidence basis
- Confidence indicators
- Source citations
- Temporal context`
