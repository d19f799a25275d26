// internal/app/store/services/defaults.go
package servicestore

import (
	"html"

	"github.com/dalemusser/stratacms/internal/domain/models"
)

type defaultSub struct {
	title, desc string
	order       int
}

type defaultService struct {
	title, desc, icon string
	order             int
	subs              []defaultSub
}

var defaults = []defaultService{
	{
		title: "International Taxation",
		desc:  "Comprehensive international taxation services for multinational corporations, global enterprises, and NRIs navigating cross-border tax compliance and strategic planning.",
		icon:  "Globe",
		order: 1,
		subs:  []defaultSub{
			{"International Taxation Advisory", "Holistic, forward-looking guidance on every facet of cross-border tax implications for businesses and individuals.", 1},
			{"NRI Taxation Services", "Comprehensive, personalized tax support for Non-Resident Indians and Persons of Indian Origin across the globe.", 2},
			{"Setup Business in India", "End-to-end guidance for foreign entities and international entrepreneurs to establish business presence in India.", 3},
			{"Transfer Pricing Services", "Specialized transfer pricing services ensuring compliance with Indian regulations and international guidelines.", 4},
		},
	},
	{
		title: "Goods and Service Tax",
		desc:  "End-to-end GST services covering registration, compliance, returns, refunds, advisory, and litigation support for businesses of all sizes.",
		icon:  "Receipt",
		order: 2,
		subs:  []defaultSub{
			{"GST Registration", "Complete assistance for GST registration including threshold analysis, documentation, and multi-state registrations.", 1},
			{"GST Returns", "Meticulous preparation and timely filing of all periodic GST returns with ITC optimization and reconciliation.", 2},
			{"GST Refunds", "Expert assistance in claiming and expediting GST refunds for exports, SEZ supplies, inverted duty structure, and excess payments.", 3},
			{"GST Litigation", "Experienced representation in GST disputes from show-cause notices through appeals to higher judicial forums.", 4},
			{"GST Consultancy", "In-depth, actionable GST advisory on classification, valuation, ITC eligibility, and business structuring.", 5},
		},
	},
	{
		title: "Business Registrations",
		desc:  "Complete support for startups, MSMEs, and enterprises throughout the business registration journey from entity selection to post-registration compliance.",
		icon:  "Building",
		order: 3,
		subs:  []defaultSub{
			{"Company Registration", "Complete company incorporation services under the Companies Act, 2013 including Private Limited, OPC, and Public Companies.", 1},
			{"LLP Registration", "Streamlined LLP registration with customized agreements tailored to your business requirements.", 2},
		},
	},
	{
		title: "Audit and Assurance Services",
		desc:  "Professional audit services that enhance financial transparency, strengthen corporate governance, and build stakeholder confidence.",
		icon:  "Shield",
		order: 4,
		subs:  []defaultSub{
			{"Statutory Audit", "Independent statutory audits under the Companies Act, 2013 adhering to Standards on Auditing and CARO requirements.", 1},
			{"Internal Audit", "Risk-based internal audit services providing independent assurance on governance, risk management, and internal controls.", 2},
			{"Fixed Asset Audit", "Thorough fixed asset audits ensuring accurate balance sheet representation and Schedule II compliance.", 3},
			{"Stock Audit", "Comprehensive stock audit services critical for working capital management and bank financing requirements.", 4},
			{"Tax Audit", "Precise tax audits under Section 44AB ensuring compliance and minimizing assessment risks.", 5},
		},
	},
	{
		title: "Accounting and Book Keeping",
		desc:  "Professional accounting services delivering accurate, timely financial records using leading software platforms.",
		icon:  "Calculator",
		order: 5,
	},
	{
		title: "Tax Consultancy",
		desc:  "Strategic direct and indirect tax planning, compliance, and representation services for businesses and individuals.",
		icon:  "TrendingUp",
		order: 6,
	},
	{
		title: "Company Secretarial Services",
		desc:  "Comprehensive company secretarial services ensuring corporate law compliance and good governance practices.",
		icon:  "FileText",
		order: 7,
	},
	{
		title: "Advisory Services",
		desc:  "Strategic advisory services including financial due diligence, valuations, M&A support, and business restructuring guidance.",
		icon:  "Briefcase",
		order: 8,
	},
}

// DefaultCatalogue returns the firm's standard service list, ready for
// ReplaceAll. Content starts as the short description; admins replace it.
func DefaultCatalogue() []CreateInput {
	out := make([]CreateInput, 0, len(defaults))
	for _, d := range defaults {
		subs := make([]models.SubService, 0, len(d.subs))
		for _, s := range d.subs {
			subs = append(subs, models.SubService{
				Title:            s.title,
				ShortDescription: s.desc,
				Content:          "<p>" + html.EscapeString(s.desc) + "</p>",
				IsActive:         true,
				Order:            s.order,
			})
		}
		out = append(out, CreateInput{
			Title:            d.title,
			ShortDescription: d.desc,
			Content:          "<p>" + html.EscapeString(d.desc) + "</p>",
			Icon:             d.icon,
			SubServices:      subs,
			IsActive:         true,
			Order:            d.order,
		})
	}
	return out
}
