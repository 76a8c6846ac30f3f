// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/site/content.go
// Summary: Static page copy for the studio site.

package site

// Pillar is one philosophy statement.
type Pillar struct {
	Title     string
	Body      string
	Highlight bool
}

// ProcessStep is one step of the engagement protocol.
type ProcessStep struct {
	Number string
	Title  string
	Body   string
}

// Card is a gallery commission. Filename drives syntax detection for Code.
type Card struct {
	Title    string
	Author   string
	Role     string
	Filename string
	Code     string
}

// Clause is one labelled paragraph of a legal protocol.
type Clause struct {
	Label string
	Text  string
	Alert bool
}

// Protocol is a numbered legal section.
type Protocol struct {
	ID      string
	Title   string
	Clauses []Clause
}

// QA is one FAQ entry.
type QA struct {
	Q, A string
}

// FAQSection groups FAQ entries under a category.
type FAQSection struct {
	Category string
	Items    []QA
}

// AboutSection is a titled block of paragraphs on the about view.
type AboutSection struct {
	Title      string
	Paragraphs []string
}

// Content is every string the site renders.
type Content struct {
	Brand, BrandSub string
	PreloaderText   string
	ScrollDown      string
	BackToTop       string

	HeroLines [2]string
	HeroSub   string

	Philosophy []Pillar

	ProcessTitle string
	Process      []ProcessStep

	GalleryHeader  string
	Cards          []Card
	ArchiveTitle   string
	ArchiveSub     string
	Archive        []Card
	ArchiveEndText string

	InvoiceHeader string
	InvoiceItems  []string
	TotalLabel    string
	TotalValue    string
	InvoiceFooter string

	StatusLabel string
	StatusValue string
	StatusQuote string

	FooterTitle string
	FooterSub   string
	Links       []string
	LegalLinks  []string

	LegalTitle  string
	LegalFooter string
	Protocols   []Protocol

	FAQSubtitle string
	FAQ         []FAQSection
	FAQCTA      string

	AboutTitle    string
	AboutSubtitle string
	About         []AboutSection
	AboutQuote    string
}

// DefaultContent returns the studio's published copy.
func DefaultContent() Content {
	return Content{
		Brand:         "MxS STUDIO",
		BrandSub:      "Madhushree x Sumontro",
		PreloaderText: "MxS STUDIO",
		ScrollDown:    "SCROLL ↓",
		BackToTop:     "BACK TO TOP ↑",

		HeroLines: [2]string{"WE DO NOT", "BUILD WEBSITES"},
		HeroSub:   "We Architect Digital Homes",

		Philosophy: []Pillar{
			{Title: "No Templates", Body: "We reject the tyranny of drag-and-drop. Every pixel is placed with intention, ensuring your digital home feels distinctly yours."},
			{Title: "Sovereign Ownership", Body: "You are not a subscriber. You are an owner. You own the digital asset completely. No strings attached.", Highlight: true},
			{Title: "The Gift Economy", Body: "Radical generosity. We select a limited number of creators each cycle and build for free. Because we can."},
		},

		ProcessTitle: "THE PROTOCOL",
		Process: []ProcessStep{
			{Number: "01.", Title: "The Audit", Body: "We analyze your digital footprint. We study your vibe, your audience, and your content. Then, we align."},
			{Number: "02.", Title: "The Blueprint", Body: "We architect your home using bespoke code. No bloat. Zero latency. Pure, compiled digital craft."},
			{Number: "03.", Title: "The Handover", Body: "You receive your live personal link and full ownership rights. It is yours forever. No monthly fees. No strings."},
		},

		GalleryHeader: "Recent Commissions",
		Cards: []Card{
			{Title: "The Minimalist Poet", Author: "Arjun V.", Role: "Writer & Thinker", Filename: "index.html",
				Code: "<div class=\"hero\">\n  <h1>Poetry in Code</h1>\n  <nav>...</nav>\n</div>\n<!-- bg-slate-900 text-slate-50 -->"},
			{Title: "Urban Kinetic", Author: "Sara K.", Role: "Movement Coach", Filename: "booking.html",
				Code: "<section id=\"booking\">\n  <a href=\"wa.me/...\">\n    Book Session\n  </a>\n</section>\n<!-- Zero latency -->"},
			{Title: "Sonic Architect", Author: "Rohan D.", Role: "Sound Designer", Filename: "player.js",
				Code: "const audio = new Audio(\"mix.mp3\");\naudio.addTextTrack(\"captions\");\n// Audio API\naudio.play();"},
		},
		ArchiveTitle: "The Archive",
		ArchiveSub:   "View Collection",
		Archive: []Card{
			{Title: "Neon Drift", Author: "Alex M.", Role: "Visual Artist", Filename: "render.js",
				Code: "const gl = canvas.getContext(\"webgl\");\ninitShader(vert, frag);\nrenderLoop();\n// WebGL Core"},
			{Title: "Silent Lens", Author: "Sarah J.", Role: "Photographer", Filename: "gallery.html",
				Code: "<gallery mode=\"lightbox\">\n  <img src=\"raw.arw\" />\n  <meta iso=\"400\" />\n</gallery>"},
			{Title: "Echo Chamber", Author: "David L.", Role: "Podcaster", Filename: "feed.xml",
				Code: "<stream bitrate=\"320\">\n  <source src=\"rss.xml\" />\n</stream>"},
			{Title: "Type Foundry", Author: "Elena R.", Role: "Typography Designer", Filename: "fonts.css",
				Code: "@font-face {\n  font-family: 'Neue';\n  src: url('neue.woff2');\n}\n/* Kerning: -0.05em */"},
		},
		ArchiveEndText: "End of Public Records",

		InvoiceHeader: "INVOICE #00000",
		InvoiceItems:  []string{"01. Hosting", "02. Design Architecture", "03. Custom Domain Map", "04. Technical Upkeep"},
		TotalLabel:    "TOTAL DUE:",
		TotalValue:    "INVITE ONLY",
		InvoiceFooter: "MxS Studio Concierge Service",

		StatusLabel: "Status:",
		StatusValue: "3 Spots Remaining (Jan)",
		StatusQuote: "\"Scarcity ensures craftsmanship.\"",

		FooterTitle: "Request Residency",
		FooterSub:   "Limited intake per cycle.",
		Links:       []string{"Concierge", "Instagram", "Email"},
		LegalLinks:  []string{"Privacy Protocol", "Terms of Residency", "Disclaimer"},

		LegalTitle:  "Operational Protocols // v1.0",
		LegalFooter: "End of Protocols",
		Protocols: []Protocol{
			{ID: "01", Title: "Data Sovereignty (Privacy)", Clauses: []Clause{
				{Label: "Minimization Principle", Text: "We collect strictly necessary data attributes: your moniker, your digital handle and your concierge line."},
				{Label: "Purpose of Collection", Text: "This data is used exclusively for the design process, identity verification and direct service communication."},
				{Label: "Zero Brokerage", Text: "We do not sell, trade, broker or distribute your data to third-party ad networks, trackers or data aggregators."},
			}},
			{ID: "02", Title: "Terms of Residency", Clauses: []Clause{
				{Label: "The Gift Economy", Text: "Selected residencies are provided free of monetary charge. The relationship is one of mutual respect, not commercial obligation."},
				{Label: "\"As-Is\" Warranty", Text: "The digital asset is provided as is, without warranties of any kind, express or implied."},
				{Label: "The Kill Switch", Text: "The studio may unpublish or redirect a residency that publishes hate speech, illegal content or material that damages the studio's reputation.", Alert: true},
			}},
			{ID: "03", Title: "Platform Disclosure", Clauses: []Clause{
				{Label: "Infrastructure", Text: "This architecture relies on standard cloud infrastructure and is subject to the provider's availability and acceptable use policies."},
				{Label: "Intellectual Property", Text: "Upon handover the configuration belongs to the creator. The design system credit in the footer must remain intact."},
			}},
		},

		FAQSubtitle: "Questions we are asked, answered once.",
		FAQ: []FAQSection{
			{Category: "The Residency", Items: []QA{
				{Q: "Is it really free?", A: "Yes. Selected creators pay nothing for design, build or hosting."},
				{Q: "How are residents selected?", A: "We read every application and choose the work we want to build a home for."},
			}},
			{Category: "Ownership", Items: []QA{
				{Q: "Who owns the site?", A: "You do. The link and the configuration are handed over in full."},
				{Q: "Are there monthly fees?", A: "No. Technical upkeep of the live link is part of the residency."},
			}},
		},
		FAQCTA: "Request Residency",

		AboutTitle:    "THE STUDIO",
		AboutSubtitle: "Two people, one discipline.",
		About: []AboutSection{
			{Title: "Origin", Paragraphs: []string{
				"MxS began as a refusal: of templates, of subscriptions, of sites that belong to the platform rather than the person.",
			}},
			{Title: "Method", Paragraphs: []string{
				"Every residency starts with an audit and ends with a handover. In between there is only code written for one person.",
				"We keep the intake small so that each home gets the attention it deserves.",
			}},
			{Title: "Promise", Paragraphs: []string{
				"No lock-in. No upsell. When we are done, the keys are yours.",
			}},
		},
		AboutQuote: "\"Architecture is the art of leaving room.\"",
	}
}
