// internal/domain/models/aboutus.go
package models

import "time"

// AboutUsID is the fixed _id of the single About Us document.
const AboutUsID = "aboutus"

// AboutUs holds the content of the About Us page. Exactly one document
// exists, keyed by AboutUsID.
type AboutUs struct {
	ID string `bson:"_id" json:"_id"`

	// Hero
	HeroTitle    string `bson:"hero_title" json:"heroTitle"`
	HeroSubtitle string `bson:"hero_subtitle" json:"heroSubtitle"`

	// Story, mission, vision
	StoryTitle     string `bson:"story_title" json:"storyTitle"`
	StoryContent   string `bson:"story_content" json:"storyContent"`
	MissionTitle   string `bson:"mission_title" json:"missionTitle"`
	MissionContent string `bson:"mission_content" json:"missionContent"`
	VisionTitle    string `bson:"vision_title" json:"visionTitle"`
	VisionContent  string `bson:"vision_content" json:"visionContent"`

	CoreValues []CoreValue `bson:"core_values" json:"coreValues"`

	// Team
	TeamTitle    string       `bson:"team_title" json:"teamTitle"`
	TeamSubtitle string       `bson:"team_subtitle" json:"teamSubtitle"`
	TeamMembers  []TeamMember `bson:"team_members" json:"teamMembers"`

	WhyChooseUsTitle  string             `bson:"why_choose_us_title" json:"whyChooseUsTitle"`
	WhyChooseUsPoints []WhyChooseUsPoint `bson:"why_choose_us_points" json:"whyChooseUsPoints"`

	ServiceAreas []ServiceArea `bson:"service_areas" json:"serviceAreas"`

	// Contact block
	Address      string `bson:"address" json:"address"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email" json:"email"`
	WorkingHours string `bson:"working_hours" json:"workingHours"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// TeamMember is one person on the About Us page.
type TeamMember struct {
	Name        string `bson:"name" json:"name"`
	Designation string `bson:"designation" json:"designation"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Image       *Image `bson:"image,omitempty" json:"image,omitempty"`
	Order       int    `bson:"order" json:"order"`
	IsActive    bool   `bson:"is_active" json:"isActive"`
}

// CoreValue is a titled value statement with an icon name.
type CoreValue struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
	Order       int    `bson:"order" json:"order"`
	IsActive    bool   `bson:"is_active" json:"isActive"`
}

// WhyChooseUsPoint is one selling point.
type WhyChooseUsPoint struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
}

// ServiceArea is a city tag.
type ServiceArea struct {
	City     string `bson:"city" json:"city"`
	IsActive bool   `bson:"is_active" json:"isActive"`
}

// DefaultCoreValueIcon is used for core values submitted without an icon.
const DefaultCoreValueIcon = "Star"
