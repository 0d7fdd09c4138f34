package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

// CSVJournal appends records to one CSV file per local day in Dir.
type CSVJournal struct {
	Dir string

	mu sync.Mutex
}

func NewCSVJournal(dir string) *CSVJournal {
	return &CSVJournal{Dir: dir}
}

// Append writes rec to the file of its day, writing the header first when
// the file is new.
func (j *CSVJournal) Append(rec domain.UsageRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}
	path := filepath.Join(j.Dir, DailyFileName(rec.Timestamp))
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(Header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{
		rec.Timestamp.Format(TimestampLayout),
		rec.AppName,
		rec.WindowTitle,
		rec.Category,
	}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
