package docs

import (
	"bufio"
	"os"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// readmeTopics extracts the topic names listed in readme.md.
func readmeTopics(t *testing.T) []string {
	t.Helper()
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("cannot open readme.md: %v", err)
	}
	defer file.Close()

	topicRe := regexp.MustCompile(`^\*\s+([^:]+):`)
	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if m := topicRe.FindStringSubmatch(scanner.Text()); m != nil {
			names = append(names, strings.TrimSpace(m[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return names
}

func TestReadmeListsEveryTopic(t *testing.T) {
	listed := readmeTopics(t)
	embedded, err := All()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range listed {
		if _, err := Topic(name); err != nil {
			t.Errorf("readme lists %q but it cannot be loaded: %v", name, err)
		}
	}
	for _, name := range embedded {
		if !slices.Contains(listed, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestTopicsAreWellFormedMarkdown(t *testing.T) {
	names, err := All()
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			content, err := Topic(name)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			// Every topic opens with a level-1 heading.
			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic %q must start with a # heading", name)
			}
		})
	}
}

func TestTopicStar(t *testing.T) {
	all, err := Topic("*")
	if err != nil {
		t.Fatal(err)
	}
	names, _ := All()
	for _, name := range names {
		single, _ := Topic(name)
		if !strings.Contains(all, single) {
			t.Errorf("Topic(\"*\") is missing topic %q", name)
		}
	}
}
