package content

import (
	"fmt"
	"strings"

	"cityverse/internal/domain/rng"
)

const maxOptions = 4

type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"-"`
}

func (q Question) Correct(option int) bool { return option == q.Answer }

var (
	fallbackCategories = []string{"books", "coffee", "flowers", "shoes", "music", "toys"}
	fallbackTitles     = []string{"Paper lantern", "Brass key", "Wool scarf", "Vinyl record", "Glass vase"}
)

// GenerateQuestions builds the escape mission's observation quiz about the
// target. Yes/no questions always exist, so the result is never empty.
func GenerateQuestions(r *rng.Stream, target Shop, eligible []Shop, n int) []Question {
	if n <= 0 {
		n = 1
	}
	rest := others(eligible, target.ID)

	var pool []Question
	pool = append(pool, choiceQuestion(r, "What does this shop sell?", target.Category,
		distinct(categories(rest), fallbackCategories, target.Category)))
	if len(target.Items) > 0 && strings.TrimSpace(target.Items[0].Title) != "" {
		own := titles([]Shop{target})
		pick, _ := rng.Choice(r, own)
		pool = append(pool, choiceQuestion(r, "Which of these was on display?", pick,
			distinct(titles(rest), fallbackTitles, own...)))
	}
	pool = append(pool,
		yesNo("Was there a logo above the door?", target.HasLogo),
		yesNo("Did the shop advertise a website?", target.HasExternalLink),
	)
	if target.ItemCount > 0 {
		pool = append(pool, countQuestion(r, target.ItemCount))
	}

	rng.Shuffle(r, pool)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}

func choiceQuestion(r *rng.Stream, prompt, correct string, wrong []string) Question {
	rng.Shuffle(r, wrong)
	if len(wrong) > maxOptions-1 {
		wrong = wrong[:maxOptions-1]
	}
	opts := append([]string{correct}, wrong...)
	rng.Shuffle(r, opts)
	q := Question{Prompt: prompt, Options: opts}
	for i, o := range opts {
		if o == correct {
			q.Answer = i
		}
	}
	return q
}

func yesNo(prompt string, yes bool) Question {
	q := Question{Prompt: prompt, Options: []string{"Yes", "No"}}
	if !yes {
		q.Answer = 1
	}
	return q
}

func countQuestion(r *rng.Stream, count int) Question {
	if count > MaxItemsPerShop {
		count = MaxItemsPerShop
	}
	var wrong []string
	for n := 1; n <= MaxItemsPerShop+1; n++ {
		if n != count {
			wrong = append(wrong, fmt.Sprint(n))
		}
	}
	return choiceQuestion(r, "How many items were on show?", fmt.Sprint(count), wrong)
}

func categories(shops []Shop) []string {
	out := make([]string, 0, len(shops))
	for _, s := range shops {
		out = append(out, s.Category)
	}
	return out
}

func titles(shops []Shop) []string {
	var out []string
	for _, s := range shops {
		for i, it := range s.Items {
			if i >= MaxItemsPerShop {
				break
			}
			if t := strings.TrimSpace(it.Title); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// distinct dedupes candidates, drops excluded values and tops up from the
// fallback list so a choice question always has wrong options.
func distinct(candidates, fallback []string, exclude ...string) []string {
	seen := make(map[string]struct{}, len(exclude))
	for _, e := range exclude {
		seen[strings.ToLower(e)] = struct{}{}
	}
	var out []string
	add := func(v string) {
		k := strings.ToLower(v)
		if _, dup := seen[k]; dup || v == "" {
			return
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	for _, c := range candidates {
		add(c)
	}
	for _, f := range fallback {
		if len(out) >= maxOptions-1 {
			break
		}
		add(f)
	}
	return out
}
