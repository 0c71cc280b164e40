package agent

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/nodari-ai/sales-engine/internal/model"
	"github.com/nodari-ai/sales-engine/pkg/firecrawl"
)

// Website content beyond this is noise for a research prompt.
const maxScrapedChars = 6000

const researchSystem = `You are a senior business intelligence analyst specializing in B2B company research.
You gather comprehensive intelligence on companies from their websites, public signals, and industry context,
and you are explicit about confidence: findings you could not verify lower your research_confidence score.
You always answer with a single JSON object and nothing else.`

// ResearchCompany gathers intelligence on the lead's company. When a scraper
// is configured, the company website and recent news are pulled in as source
// material; otherwise the stage reasons from the form data alone.
func (a *Agents) ResearchCompany(ctx context.Context, lead model.Lead) (*model.ResearchResult, error) {
	var sources strings.Builder

	if a.scraper != nil && lead.Website != "" {
		if content := a.scrapeWebsite(ctx, lead.Website); content != "" {
			fmt.Fprintf(&sources, "\n**WEBSITE CONTENT (%s):**\n%s\n", lead.Website, content)
		}
	}
	if a.scraper != nil && lead.CompanyName != "" {
		if news := a.searchNews(ctx, lead.CompanyName); news != "" {
			fmt.Fprintf(&sources, "\n**RECENT NEWS SEARCH RESULTS:**\n%s\n", news)
		}
	}

	emailDomain := "Unknown"
	if at := strings.LastIndex(lead.Email, "@"); at >= 0 {
		emailDomain = lead.Email[at+1:]
	}

	user := fmt.Sprintf(`Analyze the company %s and gather comprehensive intelligence.

**Company Website:** %s
**Contact Email Domain:** %s

**Context from their inquiry:**
- Primary Goal: %s
- Business Challenges: %s
- Data Sources: %s
- Timeline: %s
%s
**Your research must cover:** company overview, size signals, technology landscape,
pain points and AI opportunities, recent news, and competitive context.

**Output Format:** a single JSON object with these fields:
- company_summary: brief overview (2-3 sentences)
- industry: primary industry/sector
- company_size_estimate: employee count estimate or "Unknown"
- tech_stack: list of technologies mentioned
- recent_news: list of recent news items
- pain_points: list of identified challenges
- ai_opportunities: list of AI use cases
- competitors: list of competitors
- research_confidence: 0-1 score of how confident you are in findings`,
		lead.CompanyName,
		orDefault(lead.Website, "Not provided - infer from the email domain"),
		emailDomain,
		orDefault(lead.PrimaryGoal, "Not specified"),
		orDefault(lead.BusinessChallenges, "Not specified"),
		orDefault(lead.DataSources, "Not specified"),
		orDefault(lead.Timeline, "Not specified"),
		sources.String(),
	)

	return completeJSON[model.ResearchResult](ctx, a, "research", researchSystem, user, researchSchema)
}

func (a *Agents) scrapeWebsite(ctx context.Context, url string) string {
	resp, err := a.scraper.Scrape(ctx, firecrawl.ScrapeRequest{
		URL:             url,
		Formats:         []string{"markdown"},
		OnlyMainContent: true,
		Timeout:         30000,
		WaitFor:         2000,
	})
	if err != nil {
		zap.L().Warn("website scrape failed", zap.String("url", url), zap.Error(err))
		return ""
	}
	content := resp.Data.Markdown
	if len(content) > maxScrapedChars {
		cut := maxScrapedChars
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}
	return content
}

func (a *Agents) searchNews(ctx context.Context, company string) string {
	resp, err := a.scraper.Search(ctx, firecrawl.SearchRequest{
		Query: company + " company recent news",
		Limit: 5,
	})
	if err != nil {
		zap.L().Warn("news search failed", zap.String("company", company), zap.Error(err))
		return ""
	}

	var b strings.Builder
	for _, page := range resp.Data {
		fmt.Fprintf(&b, "- %s (%s): %s\n", page.Title, page.URL, page.Description)
	}
	return b.String()
}
