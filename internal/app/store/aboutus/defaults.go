// internal/app/store/aboutus/defaults.go
package aboutusstore

import "github.com/dalemusser/stratacms/internal/domain/models"

// Defaults returns the About Us content shown before an admin edits it.
// Each call returns fresh slices.
func Defaults() models.AboutUs {
	return models.AboutUs{
		ID:           models.AboutUsID,
		HeroTitle:    "About Us",
		HeroSubtitle: "Your Trusted Chartered Accountants",

		StoryTitle: "Our Story",
		StoryContent: "A S Gupta & Co is a professionally managed Chartered Accountancy firm providing comprehensive " +
			"accounting, taxation, audit, and advisory services to businesses and individuals across India. Our firm " +
			"is built on integrity, expertise, and a commitment to helping clients grow with confidence and full " +
			"regulatory compliance.",
		MissionTitle: "Our Mission",
		MissionContent: "To provide exceptional financial services with integrity, expertise, and dedication. We aim " +
			"to be trusted advisors helping businesses navigate complex financial landscapes while ensuring complete " +
			"compliance and sustainable growth.",
		VisionTitle: "Our Vision",
		VisionContent: "To be recognized as a leading Chartered Accountancy firm known for excellence, innovation, " +
			"and client satisfaction. We strive to build lasting relationships through continuous learning, " +
			"professional ethics, and value-driven services.",

		CoreValues: []models.CoreValue{
			{Title: "Integrity", Description: "We uphold the highest ethical standards in all our dealings", Icon: "Shield", Order: 1, IsActive: true},
			{Title: "Excellence", Description: "We strive for excellence in every service we provide", Icon: "Award", Order: 2, IsActive: true},
			{Title: "Client Focus", Description: "Your success is our priority - we put clients first", Icon: "Users", Order: 3, IsActive: true},
			{Title: "Innovation", Description: "We embrace modern solutions for complex challenges", Icon: "Lightbulb", Order: 4, IsActive: true},
		},

		TeamTitle:    "Meet Our Team",
		TeamSubtitle: "Expert Chartered Accountants dedicated to your success",
		TeamMembers:  []models.TeamMember{},

		WhyChooseUsTitle: "Why Choose Us",
		WhyChooseUsPoints: []models.WhyChooseUsPoint{
			{Title: "Expert Guidance", Description: "Our team of qualified CAs brings years of industry experience", Icon: "Target"},
			{Title: "Quick Turnaround", Description: "Efficient service delivery without compromising quality", Icon: "Clock"},
			{Title: "Personalized Service", Description: "Customized solutions tailored to your specific needs", Icon: "Heart"},
		},

		ServiceAreas: []models.ServiceArea{
			{City: "Zirakpur", IsActive: true},
			{City: "Chandigarh", IsActive: true},
			{City: "Mohali", IsActive: true},
			{City: "Panchkula", IsActive: true},
		},

		Address:      "3A Savitry Enclave, VIP Road, Zirakpur, Punjab",
		Phone:        "+91 90340 59226",
		Email:        "contact@asguptaco.com",
		WorkingHours: "Mon - Sat: 10:00 AM - 7:00 PM",
	}
}
