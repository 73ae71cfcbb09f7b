package extract

import (
	"regexp"
	"strconv"
	"strings"

	"ArticleAllocator/internal/domain"
)

const (
	maxPageCount = 10000
	minIDLength  = 2
	maxIDLength  = 16

	// How far past the page token the scanner looks for a date+time pair
	// that closes a block. Nothing beyond the pair belongs to the block.
	terminatorWindow = 5
)

var (
	articleIDExpr  = regexp.MustCompile(`^[A-Za-z]+[0-9][A-Za-z0-9]*$`)
	pageExpr       = regexp.MustCompile(`^[0-9]{1,5}$`)
	sourceCodeExpr = regexp.MustCompile(`^[A-Za-z]{2,6}$`)
	dateExpr       = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	timeExpr       = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

	breakTagExpr   = regexp.MustCompile(`(?i)<\s*br\s*/?\s*>|</\s*p\s*>|<\s*li\s*>`)
	tagExpr        = regexp.MustCompile(`<[^>]*>`)
	newlineRunExpr = regexp.MustCompile(`\n{2,}`)
)

const emfcMarker = "emfc"

// Result carries everything detected in one raw text.
type Result struct {
	Articles    []domain.ParsedArticle
	TotalPages  int
	HasArticles bool
}

// StripMarkup flattens an HTML fragment to plain text: line-breaking tags
// become newlines, every other tag is dropped, non-breaking spaces become
// plain spaces and newline runs collapse. Plain text passes through intact.
func StripMarkup(raw string) string {
	text := breakTagExpr.ReplaceAllString(raw, "\n")
	text = tagExpr.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = newlineRunExpr.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

// Tokenize strips markup and splits the remainder on whitespace. Article
// IDs, page counts, dates, times and source codes all appear as standalone
// tokens in the source material.
func Tokenize(raw string) []string {
	return strings.Fields(StripMarkup(raw))
}

// Extract scans raw HTML or plain text for article blocks. An article is
// kept only when a page count was confidently captured (an explicit 0
// counts); an ID with no recoverable number is silently dropped rather than
// guessed from unrelated numeric tokens. Repeated IDs within one text are
// recorded once, first occurrence wins.
func Extract(raw string) Result {
	tokens := Tokenize(raw)

	seen := map[string]struct{}{}
	var articles []domain.ParsedArticle
	total := 0

	i := 0
	for i < len(tokens) {
		token := tokens[i]
		if !isArticleID(token) {
			i++
			continue
		}

		id := strings.ToUpper(strings.TrimSpace(token))
		if _, ok := seen[id]; ok {
			i++
			continue
		}
		seen[id] = struct{}{}

		pages, found, next := scanBlock(tokens, i+1)
		i = next
		if !found {
			continue
		}

		articles = append(articles, domain.ParsedArticle{ArticleID: id, Pages: pages})
		total += pages
	}

	return Result{
		Articles:    articles,
		TotalPages:  total,
		HasArticles: len(articles) > 0,
	}
}

// blockState tracks progress through one article block.
type blockState int

const (
	seekingSourceCode blockState = iota
	seekingPage
	seekingTerminator
)

// scanBlock resolves the page count for the block that starts right after an
// article ID and returns the index scanning should resume from. The walk is
// a three-state pass: an optional source-code token, exactly one page-count
// candidate, then a bounded window for the date+time terminator.
func scanBlock(tokens []string, start int) (pages int, found bool, next int) {
	i := start
	state := seekingSourceCode

	for i < len(tokens) {
		token := tokens[i]

		switch state {
		case seekingSourceCode:
			state = seekingPage
			if isSourceCode(token) {
				i++
				continue
			}

		case seekingPage:
			if isEMFCMarker(token) || isHyphenPlaceholder(token) {
				// Placeholder instead of a number: the block has no
				// recoverable page count.
				return 0, false, i + 1
			}
			value, ok := parsePageCount(token)
			if !ok {
				// The token may already start the next block; leave it in
				// place for the outer scan.
				return 0, false, i
			}
			pages = value
			found = true
			state = seekingTerminator
			i++

		case seekingTerminator:
			// Peek for a date+time pair closing the block. The peek only
			// consumes tokens when the pair is found, so IDs inside the
			// window stay visible to the outer scan.
			for w := 0; w < terminatorWindow && i+w+1 < len(tokens); w++ {
				if dateExpr.MatchString(tokens[i+w]) && timeExpr.MatchString(tokens[i+w+1]) {
					return pages, true, i + w + 2
				}
			}
			return pages, true, i
		}
	}

	return pages, found, i
}

func isArticleID(token string) bool {
	if len(token) < minIDLength || len(token) > maxIDLength {
		return false
	}
	return articleIDExpr.MatchString(token)
}

func isSourceCode(token string) bool {
	return sourceCodeExpr.MatchString(token) && !isEMFCMarker(token)
}

func isEMFCMarker(token string) bool {
	return strings.EqualFold(token, emfcMarker)
}

func isHyphenPlaceholder(token string) bool {
	return token == "-"
}

func parsePageCount(token string) (int, bool) {
	if !pageExpr.MatchString(token) {
		return 0, false
	}
	value, err := strconv.Atoi(token)
	if err != nil || value > maxPageCount {
		return 0, false
	}
	return value, true
}
