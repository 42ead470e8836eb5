// Command inspect traces a question through the answer pipeline without
// calling an upstream model: classification, response config, source
// filtering and, when an answer is given, quality evaluation.
//
//	go run ./cmd/inspect -q "오늘 서울 날씨" -url https://news.naver.com/a -url https://blog.naver.com/b
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"ai-search-be/internal/pkg/logger"
	"ai-search-be/pkg/answer/filter"
	"ai-search-be/pkg/answer/intent"
	"ai-search-be/pkg/answer/keyword"
	"ai-search-be/pkg/answer/quality"
	"ai-search-be/pkg/answer/relevance"
	"ai-search-be/pkg/answer/strategy"
	"ai-search-be/pkg/answer/tuning"

	"github.com/fatih/color"
)

type urlList []string

func (u *urlList) String() string { return strings.Join(*u, ",") }

func (u *urlList) Set(value string) error {
	*u = append(*u, value)
	return nil
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func main() {
	var urls urlList
	question := flag.String("q", "", "question to trace")
	scope := flag.String("scope", "general", "search scope: general, news or academic")
	answer := flag.String("answer", "", "answer text to evaluate (optional)")
	tuningPath := flag.String("tuning", os.Getenv("PIPELINE_TUNING_PATH"), "tuning yaml path")
	flag.Var(&urls, "url", "citation url (repeatable)")
	flag.Parse()

	if strings.TrimSpace(*question) == "" {
		color.Red("Missing -q")
		flag.Usage()
		os.Exit(2)
	}

	tables, catalog, err := tuning.LoadDefaults(*tuningPath)
	if err != nil {
		color.Red("Failed to load tuning: %v", err)
		os.Exit(1)
	}

	color.Cyan("🔎 Tracing: %s\n", *question)

	color.Yellow("\n1. Keywords")
	fmt.Println(strings.Join(keyword.Extract(*question).Sorted(), ", "))

	category := intent.Classify(*question)
	color.Yellow("\n2. Question type")
	color.Green("%s", category)

	color.Yellow("\n3. Response config (scope=%s)", *scope)
	cfg := catalog.Resolve(category, strategy.ParseSearchScope(*scope))
	prettyPrint(cfg)

	var scored []relevance.Scored
	if cfg.UseSearch && len(urls) > 0 {
		candidates := make([]relevance.Candidate, 0, len(urls))
		for i, u := range urls {
			candidates = append(candidates, relevance.Candidate{Title: fmt.Sprintf("source %d", i+1), URL: u})
		}

		f := filter.New(relevance.NewScorer(tables, logger.NewNopLogger()), catalog)
		var stats filter.Stats
		scored, stats = f.Apply(candidates, *question, category)

		color.Yellow("\n4. Source filtering")
		for _, s := range scored {
			color.Green("  %5.1f  %-10s %s", s.RelevanceScore, s.SourceType, s.URL)
		}
		fmt.Println(stats.Description())
		prettyPrint(stats)
	} else {
		color.Yellow("\n4. Source filtering")
		fmt.Println("skipped")
	}

	if *answer == "" {
		return
	}

	score := quality.Evaluate(*answer, len(scored), category)
	color.Yellow("\n5. Quality")
	prettyPrint(score)
	policy := quality.DefaultPolicy()
	if policy.NeedsRetry(score.TotalScore, 0) {
		color.Red("Below threshold %d, a retry would be issued:", policy.Threshold)
		fmt.Println(quality.RetryPrompt(category, 1, *question))
	} else {
		color.Green("Accepted")
	}
}
