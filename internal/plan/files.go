package plan

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/zfit/zfit/internal/models"
)

const (
	rawFile     = "unfiltered_program.csv"
	cleanedFile = "filtered_program.csv"
)

var (
	rawHeader     = []string{"title", "date", "musclegroups", "exercise", "sets"}
	cleanedHeader = []string{"title", "date", "musclegroups", "exercise", "set_num", "lbs", "reps"}
)

// Session keys the plan artifacts of one generation request.
type Session string

// NewSession returns a fresh random session key.
func NewSession() Session {
	return Session(uuid.NewString())
}

// FileStore keeps the raw and cleaned plan CSVs, one directory per session.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) sessionDir(session Session) (string, error) {
	if _, err := uuid.Parse(string(session)); err != nil {
		return "", fmt.Errorf("invalid plan session %q", session)
	}
	return filepath.Join(fs.dir, string(session)), nil
}

func (fs *FileStore) path(session Session, name string) (string, error) {
	dir, err := fs.sessionDir(session)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func (fs *FileStore) write(session Session, name string, data []byte) error {
	p, err := fs.path(session, name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("creating plan dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteRaw stores the generator's CSV text for the session, overwriting any prior content.
func (fs *FileStore) WriteRaw(session Session, text string) error {
	return fs.write(session, rawFile, []byte(text))
}

// ReadRaw returns the exercise rows of the session's raw plan. Lines that do
// not have exactly five fields, the header, and malformed CSV lines are skipped.
func (fs *FileStore) ReadRaw(session Session) ([]models.RawPlanRow, error) {
	p, err := fs.path(session, rawFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening raw plan: %w", err)
	}
	defer f.Close()
	return parseRaw(f)
}

func parseRaw(r io.Reader) ([]models.RawPlanRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	var rows []models.RawPlanRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				continue
			}
			return nil, fmt.Errorf("reading raw plan: %w", err)
		}
		if len(rec) != len(rawHeader) {
			continue
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		if isHeader(rec, rawHeader) {
			continue
		}
		rows = append(rows, models.RawPlanRow{
			Title:        rec[0],
			Date:         rec[1],
			MuscleGroups: rec[2],
			Exercise:     rec[3],
			SetCount:     rec[4],
		})
	}
	return rows, nil
}

func isHeader(rec, header []string) bool {
	for i := range header {
		if !strings.EqualFold(rec[i], header[i]) {
			return false
		}
	}
	return true
}

// WriteCleaned stores the cleaned rows with a header, overwriting any prior content.
func (fs *FileStore) WriteCleaned(session Session, rows []models.CleanedSetRow) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(cleanedHeader); err != nil {
		return fmt.Errorf("encoding cleaned plan: %w", err)
	}
	for _, r := range rows {
		rec := []string{
			r.Title, r.Date, r.MuscleGroups, r.Exercise,
			strconv.Itoa(r.SetNum),
			strconv.FormatFloat(r.Lbs, 'f', -1, 64),
			strconv.FormatFloat(r.Reps, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("encoding cleaned plan: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding cleaned plan: %w", err)
	}
	return fs.write(session, cleanedFile, buf.Bytes())
}

// ReadCleaned loads the session's cleaned plan. Columns are located by header name.
func (fs *FileStore) ReadCleaned(session Session) ([]models.CleanedSetRow, error) {
	p, err := fs.path(session, cleanedFile)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("opening cleaned plan: %w", err)
	}
	defer f.Close()
	return parseCleaned(f)
}

func parseCleaned(r io.Reader) ([]models.CleanedSetRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cleaned plan: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("cleaned plan has no header")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range cleanedHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("cleaned plan missing column %q", name)
		}
	}

	rows := make([]models.CleanedSetRow, 0, len(records)-1)
	for line, rec := range records[1:] {
		setNum, err := strconv.Atoi(rec[col["set_num"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: set_num: %w", line+2, err)
		}
		lbs, err := strconv.ParseFloat(rec[col["lbs"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: lbs: %w", line+2, err)
		}
		reps, err := strconv.ParseFloat(rec[col["reps"]], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: reps: %w", line+2, err)
		}
		rows = append(rows, models.CleanedSetRow{
			Title:        rec[col["title"]],
			Date:         rec[col["date"]],
			MuscleGroups: rec[col["musclegroups"]],
			Exercise:     rec[col["exercise"]],
			SetNum:       setNum,
			Lbs:          lbs,
			Reps:         reps,
		})
	}
	return rows, nil
}

// Remove deletes every artifact of the session.
func (fs *FileStore) Remove(session Session) error {
	dir, err := fs.sessionDir(session)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing plan session: %w", err)
	}
	return nil
}
