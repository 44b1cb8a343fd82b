package questions

import "strings"

// Category is one ordered rule in the categorization table.
type Category struct {
	ID       string
	Name     string
	Slug     string
	Keywords []string
	Priority int
}

// categoryRules is evaluated first-match-wins in priority order. Kept as
// data so the table can be tested and tuned without touching any
// generation logic. Priority, not keyword count, decides when a question
// matches several categories.
var categoryRules = []Category{
	{
		ID:   "proxy-types",
		Name: "Proxy Types",
		Slug: "proxy-types",
		Keywords: []string{
			"residential proxy", "residential proxies",
			"datacenter proxy", "datacenter proxies",
			"rotating proxy", "rotating proxies",
			"mobile proxy", "mobile proxies",
			"socks proxy", "socks5", "socks4",
			"http proxy", "https proxy",
			"static proxy", "sticky proxy",
			"isp proxy", "backconnect",
		},
		Priority: 1,
	},
	{
		ID:   "web-scraping",
		Name: "Web Scraping",
		Slug: "web-scraping",
		Keywords: []string{
			"scraping", "scraper", "scrape",
			"crawl", "crawler", "crawling",
			"bot", "automation",
			"selenium", "puppeteer", "playwright",
			"requests", "beautiful soup",
			"anti-detect", "fingerprint",
		},
		Priority: 2,
	},
	{
		ID:   "proxy-comparison",
		Name: "Comparisons",
		Slug: "proxy-comparison",
		Keywords: []string{
			" vs ", "versus", " or ",
			"difference between",
			"compare", "comparison",
			"better than", "which is better",
		},
		Priority: 3,
	},
	{
		ID:   "proxy-howto",
		Name: "How-To Guides",
		Slug: "proxy-howto",
		Keywords: []string{
			"how to", "how do", "how can",
			"setup", "set up", "setting up",
			"configure", "configuration",
			"install", "connect", "use ",
		},
		Priority: 4,
	},
	{
		ID:   "troubleshooting",
		Name: "Troubleshooting",
		Slug: "troubleshooting",
		Keywords: []string{
			"not working", "doesn't work", "won't work",
			"error", "problem", "issue",
			"fix", "solve", "troubleshoot",
			"block", "blocked", "ban", "banned",
			"captcha", "detect",
		},
		Priority: 5,
	},
	{
		ID:   "security-privacy",
		Name: "Security & Privacy",
		Slug: "security-privacy",
		Keywords: []string{
			"safe", "secure", "security",
			"privacy", "anonymous", "anonymity",
			"legal", "illegal", "law",
			"risk", "danger", "vpn",
		},
		Priority: 6,
	},
	{
		ID:   "proxy-basics",
		Name: "Proxy Basics",
		Slug: "proxy-basics",
		Keywords: []string{
			"what is", "what are", "what does",
			"definition", "meaning", "explain",
			"works", "work", "purpose",
		},
		// Catch-all for definitions; lowest priority.
		Priority: 7,
	},
}

var fallbackCategory = Category{
	ID:   "proxy-basics",
	Name: "Proxy Basics",
	Slug: "proxy-basics",
}

// Categorize assigns a question to the first category whose keyword list
// contains a substring of the lower-cased question, checked in priority
// order. Questions matching nothing fall back to basics.
func Categorize(question string) Category {
	q := strings.ToLower(question)
	for _, cat := range categoryRules {
		for _, keyword := range cat.Keywords {
			if strings.Contains(q, keyword) {
				return cat
			}
		}
	}
	return fallbackCategory
}

// Categories exposes the rule table in priority order for listings.
func Categories() []Category {
	out := make([]Category, len(categoryRules))
	copy(out, categoryRules)
	return out
}
