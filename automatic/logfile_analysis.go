package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/crossrow/opener/stats"
)

// AnalyzeLogFile summarizes a turn log written by Runner.Run.
func AnalyzeLogFile(filepath string) (*stats.Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

// AnalyzeLog is AnalyzeLogFile for an open log.
func AnalyzeLog(rd io.Reader) (*stats.Summary, error) {
	r := csv.NewReader(rd)
	// turn,rack,word,offset,score
	r.FieldsPerRecord = 5
	summary := stats.NewSummary()
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "turn" {
			continue
		}
		if record[2] == "" {
			summary.AddNoMove()
			continue
		}
		score, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("turn %s: bad score: %w", record[0], err)
		}
		summary.Add(score)
	}
	return summary, nil
}
