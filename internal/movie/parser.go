// Package movie parses frame-timed Movie XML dialogue transcripts.
//
// A transcript is a hierarchical document whose root carries an optional
// total-duration attribute; speech entries are <sound> elements (at any
// depth) with a boolean-like tts attribute, start/stop frame fields, and a
// nested ttsdata block holding the spoken text and voice name.
package movie

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mgpai22/gosub/internal/logging"
	"github.com/mgpai22/gosub/internal/subtitle"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrMalformedInput reports a document that cannot be parsed at all: bad
// XML, or no root element. Individual bad entries are skipped, not fatal.
var ErrMalformedInput = errors.New("malformed movie xml")

// speaker name used when an entry has no voice field
const UnknownSpeaker = "Unknown"

// raw decode targets; pointers distinguish missing fields from empty ones
type soundElement struct {
	TTS     string   `xml:"tts,attr"`
	Start   *string  `xml:"start"`
	Stop    *string  `xml:"stop"`
	TTSData *ttsData `xml:"ttsdata"`
}

type ttsData struct {
	Text  string `xml:"text"`
	Voice string `xml:"voice"`
}

// Result carries the parsed entries plus what the parser learned about the
// document along the way.
type Result struct {
	Entries     []subtitle.Entry
	Skipped     int     // speech entries dropped by validation
	Duration    float64 // declared root duration attribute, in frames
	HasDuration bool
}

type Parser struct {
	logger *logging.Logger
	titler cases.Caser
}

func NewParser(logger *logging.Logger) *Parser {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Parser{
		logger: logger,
		titler: cases.Title(language.Und),
	}
}

func (p *Parser) ParseBytes(content []byte) (*Result, error) {
	return p.Parse(bytes.NewReader(content))
}

// Parse walks the document and extracts speech entries in document order.
// Entries failing per-field validation are skipped with a warning; only an
// undecodable document or a missing root aborts the parse.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	decoder := xml.NewDecoder(r)
	result := &Result{}
	sawRoot := false

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse movie xml: %w: %v", ErrMalformedInput, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !sawRoot {
			sawRoot = true
			p.readRootDuration(start, result)
			continue
		}

		if start.Name.Local != "sound" {
			continue
		}

		var raw soundElement
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("parse movie xml: %w: %v", ErrMalformedInput, err)
		}

		p.collectSound(raw, result)
	}

	if !sawRoot {
		return nil, fmt.Errorf("parse movie xml: %w: no root element", ErrMalformedInput)
	}

	p.logger.Debugw("parsed movie xml",
		"entries", len(result.Entries),
		"skipped", result.Skipped,
	)

	return result, nil
}

func (p *Parser) readRootDuration(root xml.StartElement, result *Result) {
	for _, attr := range root.Attr {
		if attr.Name.Local != "duration" {
			continue
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
		if err != nil {
			p.logger.Debugw("ignoring unparseable root duration", "value", attr.Value)
			return
		}
		result.Duration = d
		result.HasDuration = true
		return
	}
}

// collectSound validates one speech element and appends it to the result.
// Non-speech elements are ignored without note; invalid speech elements are
// counted and logged.
func (p *Parser) collectSound(raw soundElement, result *Result) {
	tts, err := strconv.ParseBool(strings.TrimSpace(raw.TTS))
	if err != nil || !tts {
		return
	}

	if raw.Start == nil || raw.Stop == nil {
		p.logger.Warnw("skipping sound element: missing start or stop")
		result.Skipped++
		return
	}

	start, err := parseFrame(*raw.Start)
	if err != nil {
		p.logger.Warnw("skipping sound element: bad start frame", "value", *raw.Start)
		result.Skipped++
		return
	}
	stop, err := parseFrame(*raw.Stop)
	if err != nil {
		p.logger.Warnw("skipping sound element: bad stop frame", "value", *raw.Stop)
		result.Skipped++
		return
	}
	if start < 0 || stop < start {
		p.logger.Warnw("skipping sound element: invalid frame range",
			"start", start,
			"stop", stop,
		)
		result.Skipped++
		return
	}

	var text, voice string
	if raw.TTSData != nil {
		text = strings.TrimSpace(raw.TTSData.Text)
		voice = strings.TrimSpace(raw.TTSData.Voice)
	}
	if text == "" {
		// benign: silent or placeholder entries are expected in transcripts
		p.logger.Debugw("skipping empty subtitle", "start", start)
		result.Skipped++
		return
	}

	speaker := UnknownSpeaker
	if voice != "" {
		speaker = p.titler.String(strings.ToLower(voice))
	}

	result.Entries = append(result.Entries, subtitle.Entry{
		Start:   start,
		Stop:    stop,
		Text:    text,
		Speaker: speaker,
	})
}

// parseFrame converts a frame field to a number. An empty field counts as
// frame zero; anything non-numeric is an error.
func parseFrame(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
