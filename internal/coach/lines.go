package coach

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"

	log "github.com/sirupsen/logrus"
)

type Line struct {
	Text string `json:"text"`
	Mood string `json:"mood"`
}

// LinesManager serves motivational one-liners from a CSV pool,
// grouped by mood so replies can match the check-in tone.
type LinesManager struct {
	Lines     []*Line
	MoodLines map[string][]*Line
}

func NewLinesManager(linesCsvReader *csv.Reader) (*LinesManager, error) {
	lm := &LinesManager{}
	lm.MoodLines = make(map[string][]*Line)

	log.Println("reading coach lines CSV ...")

	linesCsvReader.Comma = ';'
	for {
		record, err := linesCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 2 {
			return nil, fmt.Errorf("record [%s] does not have 2 elements", record)
		}

		// LINE;MOOD
		line := &Line{
			Text: record[0],
			Mood: record[1],
		}
		lm.Lines = append(lm.Lines, line)
		lm.MoodLines[line.Mood] = append(lm.MoodLines[line.Mood], line)
	}

	if len(lm.Lines) == 0 {
		return nil, fmt.Errorf("coach lines CSV is empty")
	}

	log.Printf("coach lines CSV read %d lines", len(lm.Lines))

	return lm, nil
}

func (lm *LinesManager) RandomLine() *Line {
	index := rand.Float64() * float64(len(lm.Lines))
	return lm.Lines[int(index)]
}

// RandomLineForMood falls back to the whole pool for unknown moods.
func (lm *LinesManager) RandomLineForMood(mood string) *Line {
	lines, ok := lm.MoodLines[mood]
	if !ok || len(lines) == 0 {
		return lm.RandomLine()
	}
	index := rand.Float64() * float64(len(lines))
	return lines[int(index)]
}
