package seed

import "github.com/journalist-portfolio-api/internal/models"

var defaultProfile = models.Profile{
	BioShort:          "Journalist covering social issues and environment.",
	ProfessionalTitle: "Investigative Journalist",
	SocialLinks:       "{}",
}

var defaultSettings = []models.Setting{
	{Key: "site_title", Value: "Shalu Sachdeva"},
	{Key: "site_tagline", Value: "Journalism with Purpose"},
}

var defaultCategories = []models.Category{
	{Name: "Investigative", Slug: "investigative", Color: "#2D5016"},
	{Name: "Environment", Slug: "environment", Color: "#A4C3A2"},
	{Name: "Social Issues", Slug: "social-issues", Color: "#8B7355"},
	{Name: "Features", Slug: "features", Color: "#DAA520"},
}

var sampleArticles = []models.Article{
	{
		Title:    "The Silent Crisis: Water Scarcity in Rural Communities",
		Subtitle: "An in-depth look at the struggle for clean water in the heart of the country.",
		Slug:     "silent-crisis-water-scarcity",
		Excerpt:  "Across the rural landscape, communities are facing an unprecedented water crisis that threatens their way of life.",
		Content: "Water is the lifeblood of any community, but for many in rural areas, it is becoming a luxury. " +
			"In this investigation, we explore the systemic failures and environmental factors contributing to this growing crisis. " +
			"From dried-up wells to contaminated sources, the stories of those affected are a stark reminder of our most basic needs being unmet.\n\n" +
			"Local farmers describe the heartbreak of watching their crops wither as the water table drops. " +
			"Meanwhile, health officials warn of the long-term consequences of inadequate sanitation. " +
			"The path forward requires both immediate intervention and long-term policy changes to ensure that every citizen has access to safe, clean water.",
		Status:          models.StatusPublished,
		PublicationDate: "2024-01-15",
	},
	{
		Title:    "Renewable Resilience: How Coastal Towns are Fighting Back",
		Subtitle: "Coastal communities are turning to wind and solar to protect their futures.",
		Slug:     "renewable-resilience-coastal-towns",
		Excerpt:  "As sea levels rise, these towns are not just surviving; they are innovating with renewable energy.",
		Content: "The ocean has always been both a provider and a threat to coastal towns. " +
			"Today, as climate change accelerates, the threat is more pronounced than ever. However, a new wave of resilience is emerging. " +
			"By embracing renewable energy, these communities are reducing their carbon footprint and building a more stable future.\n\n" +
			"Offshore wind farms and community-led solar projects are providing more than just power; they are creating jobs and a sense of purpose. " +
			"We spoke with community leaders who are spearheading these initiatives, proving that even in the face of daunting challenges, innovation can lead the way.",
		Status:          models.StatusPublished,
		PublicationDate: "2024-02-01",
	},
	{
		Title:    "Urban Greenery: The Mental Health Benefits of City Parks",
		Subtitle: "Why green spaces are essential for the well-being of urban dwellers.",
		Slug:     "urban-greenery-mental-health",
		Excerpt:  "New research highlights the profound impact that accessible parks have on reducing stress and improving mood.",
		Content: "In the concrete jungle, parks are more than just aesthetic additions; they are vital for mental health. " +
			"Recent studies have shown that spending time in green spaces can significantly lower cortisol levels and improve overall well-being. " +
			"This feature explores the importance of urban planning that prioritizes nature.\n\n" +
			"From small community gardens to expansive city parks, these spaces provide a much-needed escape from the hustle and bustle of city life. " +
			"We interviewed psychologists and urban planners about how we can make our cities more livable by integrating more nature into our daily environments.",
		Status:          models.StatusPublished,
		PublicationDate: "2024-02-10",
	},
}
