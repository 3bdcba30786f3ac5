package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regex for the timing line; anything after the end stamp
// (position hints like "X1:40 X2:600") is ignored.
var timeRegex = regexp.MustCompile(`^\s*(\S+)\s*-->\s*(\S+)`)

const utf8BOM = "\ufeff"

// ParseSRT parses SRT content from a reader.
//
// SRT format:
//
//	1
//	00:00:00,000 --> 00:00:02,500
//	Text here
//	second line
//
//	2
//	...
//
// Multi-line text is kept with "\n" separators. A block without a numeric
// index or a valid timing line is reported as an error.
func ParseSRT(r io.Reader) (List, error) {
	var subtitles List
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var block []string
	blockStart := 0
	lineNum := 0

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		sub, err := parseBlock(block)
		if err != nil {
			return fmt.Errorf("line %d: %w", blockStart, err)
		}
		subtitles = append(subtitles, sub)
		block = block[:0]
		return nil
	}

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineNum == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}

		if len(block) == 0 {
			blockStart = lineNum
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// Don't forget the last subtitle
	if err := flush(); err != nil {
		return nil, err
	}
	return subtitles, nil
}

func parseBlock(lines []string) (Subtitle, error) {
	index, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return Subtitle{}, fmt.Errorf("invalid subtitle index %q", lines[0])
	}
	if len(lines) < 2 {
		return Subtitle{}, fmt.Errorf("subtitle %d: missing timing line", index)
	}

	matches := timeRegex.FindStringSubmatch(lines[1])
	if len(matches) != 3 {
		return Subtitle{}, fmt.Errorf("subtitle %d: invalid timing line %q", index, lines[1])
	}
	start, err := ParseTimestamp(matches[1])
	if err != nil {
		return Subtitle{}, fmt.Errorf("subtitle %d: %w", index, err)
	}
	end, err := ParseTimestamp(matches[2])
	if err != nil {
		return Subtitle{}, fmt.Errorf("subtitle %d: %w", index, err)
	}

	return Subtitle{
		Index:     index,
		StartTime: start,
		EndTime:   end,
		Text:      strings.Join(lines[2:], "\n"),
	}, nil
}

// ParseSRTFile parses an SRT file from the given path.
func ParseSRTFile(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseSRT(file)
}

// ParseSRTString parses SRT content from a string.
func ParseSRTString(content string) (List, error) {
	return ParseSRT(strings.NewReader(content))
}

// FormatSRT formats a list of subtitles to SRT format.
// Every entry, including the last, ends with a blank line.
func FormatSRT(subs List) string {
	var builder strings.Builder
	for _, sub := range subs {
		builder.WriteString(strconv.Itoa(sub.Index))
		builder.WriteString("\n")

		builder.WriteString(FormatTimestamp(sub.StartTime))
		builder.WriteString(" --> ")
		builder.WriteString(FormatTimestamp(sub.EndTime))
		builder.WriteString("\n")

		// A blank line inside the text would split the entry on re-parse.
		builder.WriteString(collapseBlankLines(sub.Text))
		builder.WriteString("\n\n")
	}
	return builder.String()
}

func collapseBlankLines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// WriteSRTFile writes subtitles to an SRT file.
func WriteSRTFile(path string, subs List) error {
	return os.WriteFile(path, []byte(FormatSRT(subs)), 0644)
}
