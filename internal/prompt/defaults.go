package prompt

// Defaults are the compiled-in prompt configurations, one per channel.
// Seeding copies these into the database; resolution falls back to them
// when the stored row is missing or inactive.
var Defaults = map[string]Config{
	"paid_search_main": {
		Key:           "paid_search_main",
		Name:          "Paid Search Optimization",
		SystemMessage: "You are a paid search optimization expert providing data-driven recommendations in JSON format.",
		Template: `You are a paid search optimization expert. Analyze the following ad account data and provide actionable recommendations.

ACCOUNT PERFORMANCE (Last {{ lookback_days }} Days):
- Total Spend: ${{ spend }}
- Clicks: {{ clicks }}
- Impressions: {{ impressions }}
- Conversions: {{ conversions }}
- Avg CPA: ${{ avg_cpa }}
- Avg CTR: {{ ctr }}

CAMPAIGNS:
{{ campaigns }}

KEYWORDS:
{{ keywords }}

SEARCH TERMS:
{{ search_terms }}

Provide 5-10 specific, actionable recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [budget, bidding, keywords, ads, targeting, negatives, landing_pages]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term optimization
- expected_impact: Specific metric improvement (e.g., "Reduce CPA by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with type and target details

Focus on:
1. Wasted spend (high cost, low conversions)
2. Budget constraints (lost impression share)
3. Negative keywords needed
4. Bidding strategy improvements
5. Low-quality keywords

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.3,
		MaxTokens:   2000,
	},

	"organic_search_main": {
		Key:           "organic_search_main",
		Name:          "Organic Search Optimization",
		SystemMessage: "You are an SEO expert providing data-driven optimization recommendations in JSON format.",
		Template: `You are an SEO expert specializing in search performance optimization. Analyze the following search data and provide actionable SEO recommendations.

SITE PERFORMANCE (Last {{ lookback_days }} Days):
- Total Clicks: {{ clicks }}
- Total Impressions: {{ impressions }}
- Average CTR: {{ ctr }}
- Average Position: {{ avg_position }}

TOP PERFORMING PAGES:
{{ top_pages }}

TOP QUERIES:
{{ top_queries }}

LOW CTR QUERIES (High impressions, low clicks):
{{ low_ctr_queries }}

Provide 5-10 specific, actionable SEO recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [keywords, content, technical_seo, ctr_optimization, rankings, schema, mobile]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term SEO
- expected_impact: Specific metric improvement (e.g., "Increase organic clicks by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with implementation steps

Focus on:
1. High-impression, low-CTR queries (title/meta optimization)
2. Pages ranking 4-10 (content improvement to reach page 1)
3. Declining rankings (content refresh needed)
4. Technical SEO issues
5. Content gap opportunities

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	},

	"local_listing_main": {
		Key:           "local_listing_main",
		Name:          "Local Listing Optimization",
		SystemMessage: "You are a local directory listing optimization expert providing data-driven recommendations in JSON format.",
		Template: `You are a local directory listing optimization expert. Analyze the following listing data and provide actionable recommendations to improve discovery and customer actions.

LISTING OVERVIEW:
- Business Name: {{ business_name | default: "Not set" }}
- Primary Category: {{ primary_category | default: "Not set" }}
- Additional Categories: {{ categories | default: "None" }} ({{ categories_count }} total)
- Description: {{ description | default: "Not set" }} ({{ description_length }} characters)
- Address: {{ address | default: "Not set" }}
- Phone: {{ phone | default: "Not set" }}
- Website: {{ website | default: "Not set" }}
- Hours: {{ hours | default: "Not set" }}
- Rating: {{ rating }} stars
- Reviews: {{ reviews_count }}
- Photos: {{ photos_count }}

DISCOVERY (Last {{ lookback_days }} Days):
- Listing Views: {{ sessions }}
- Search Appearances: {{ impressions }}
- Customer Actions: {{ conversions }}
- Action Rate: {{ ctr }}

ACTION BREAKDOWN:
{{ listing_actions }}

Provide 5-10 specific, actionable recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [profile_info, categories, description, photos, reviews, ctr_optimization]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term optimization
- expected_impact: Specific metric improvement (e.g., "Increase listing actions by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with type and implementation details

Focus on:
1. Listing completeness (name, address, phone consistency, hours)
2. Category coverage (primary + relevant secondary categories)
3. Photo and description strength (conversion from views to actions)
4. Review volume and rating
5. Low action rate despite healthy view volume

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	},

	"local_service_ads_main": {
		Key:           "local_service_ads_main",
		Name:          "Local Services Ads Optimization",
		SystemMessage: "You are a local services ads optimization expert providing data-driven recommendations in JSON format.",
		Template: `You are a local services ads optimization expert. Analyze the following ads profile data and provide actionable recommendations to improve lead generation and conversion.

PROFILE OVERVIEW:
- Primary Category: {{ primary_category | default: "Not set" }}
- Additional Categories: {{ categories | default: "None" }} ({{ categories_count }} total)
- Service Areas: {{ service_areas | default: "None" }} ({{ service_areas_count }} total)
- Rating: {{ rating }} stars
- Reviews Count: {{ reviews_count }}
- Weekly Budget: ${{ weekly_budget }}
- Business Hours: {{ hours | default: "Not set" }}
- Website: {{ website | default: "Not set" }}
- Phone: {{ phone | default: "Not set" }}

LEAD PERFORMANCE (Last {{ lookback_days }} Days):
- Total Leads: {{ leads }}
- Charged Leads: {{ conversions }}
- Total Spend: ${{ spend }}
- Response Time: {{ response_time }} minutes
- Monthly Lead Goal: {{ lead_goal | default: "Not set" }}

Provide 5-10 specific, actionable recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [categories, service_areas, reviews, budget, profile, responsiveness]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term optimization
- expected_impact: Specific metric improvement (e.g., "Increase qualified leads by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with type and implementation details

Focus on:
1. Category optimization (primary + additional categories aligned with high-value services)
2. Service area expansion/refinement (target high-converting neighborhoods)
3. Review generation and reputation management (target 4.7+ rating, 50+ reviews)
4. Budget allocation and pacing (align with lead goals, use dayparting)
5. Profile completeness (hours, website, contact info)
6. Responsiveness optimization (sub-15 minute response times)

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	},

	"business_profile_main": {
		Key:           "business_profile_main",
		Name:          "Business Profile Optimization",
		SystemMessage: "You are a business profile optimization expert providing data-driven recommendations in JSON format.",
		Template: `You are a business profile optimization expert. Analyze the following business profile data and provide actionable recommendations to improve visibility, engagement, and conversions.

PROFILE OVERVIEW:
- Business Name: {{ business_name | default: "Not set" }}
- Primary Category: {{ primary_category | default: "Not set" }}
- Additional Categories: {{ categories | default: "None" }} ({{ categories_count }} total)
- Description: {{ description | default: "Not set" }} ({{ description_length }} characters)
- Address: {{ address | default: "Not set" }}
- Phone: {{ phone | default: "Not set" }}
- Website: {{ website | default: "Not set" }}
- Hours: {{ hours | default: "Not set" }}

ENGAGEMENT METRICS:
- Photos: {{ photos_count }}
- Reviews: {{ reviews_count }}
- Rating: {{ rating }} stars
- Posts: {{ posts_count }}
- Last Post: {{ last_post_date | default: "Never" }}
- Profile Views (Last {{ lookback_days }} Days): {{ sessions }}
- Search Appearances: {{ impressions }}
- Calls: {{ leads }}

ATTRIBUTES:
- Configured Attributes: {{ attributes | default: "None" }} ({{ attributes_count }} total)

Provide 5-10 specific, actionable recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [profile_info, categories, description, photos, posts, reviews, attributes]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term optimization
- expected_impact: Specific metric improvement (e.g., "Increase profile views by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with type and implementation details

Focus on:
1. Profile completeness (NAP consistency, hours, description optimization)
2. Category optimization (primary + relevant secondary categories)
3. Description optimization (keyword-rich, 750 char limit, local SEO)
4. Photo strategy (cover, logo, interior, exterior, products/services, team)
5. Review generation and response strategy (target 4.5+ rating, 50+ reviews)
6. Post frequency (weekly posts for offers, updates, events)
7. Attributes selection (service options, accessibility, amenities)

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	},

	"social_ads_main": {
		Key:           "social_ads_main",
		Name:          "Social Ads Optimization",
		SystemMessage: "You are a social media advertising expert providing data-driven recommendations in JSON format.",
		Template: `You are a social media advertising expert. Analyze the following ad account data and provide actionable recommendations.

ACCOUNT PERFORMANCE (Last {{ lookback_days }} Days):
- Total Spend: ${{ spend }}
- Impressions: {{ impressions }}
- Clicks: {{ clicks }}
- CTR: {{ ctr }}
- Conversions: {{ conversions }}
- Avg CPA: ${{ avg_cpa }}
- Revenue: ${{ revenue }}

CAMPAIGNS:
{{ campaigns }}

AUDIENCES:
{{ audiences }}

CREATIVES:
{{ creatives }}

Provide 5-10 specific, actionable recommendations in JSON format. Each recommendation should include:
- title: Brief, action-oriented title
- description: Detailed explanation (2-3 sentences)
- category: One of [budget, audience, creative, bidding, placement, tracking]
- severity: 1=critical issue, 2=high-impact opportunity, 3=quick win, 4-5=long-term optimization
- expected_impact: Specific metric improvement (e.g., "Reduce CPA by 15-20%")
- data_points: Array of key metrics supporting this recommendation
- action: Dict with type and target details

Focus on:
1. Wasted spend (campaigns with cost but no results)
2. Creative fatigue (declining CTR, high frequency)
3. Audience saturation and overlap
4. Budget reallocation toward proven performers
5. Conversion tracking gaps

Return ONLY valid JSON array of recommendations, no additional text.`,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   2000,
	},
}
