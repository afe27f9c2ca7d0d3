package clientRepo

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"

	"go.uber.org/zap"
)

// csvHeader is the column layout of the flat file, one row per client.
// Booked sessions are semicolon-joined "YYYY-MM-DD HH:MM" strings.
var csvHeader = []string{
	"name", "email", "total_sessions", "sessions_completed",
	"sessions_remaining", "booked_sessions", "payment_reminder_sent",
}

// CSVClientStore persists client records to a flat CSV file.
type CSVClientStore struct {
	path string
}

// NewCSVClientStore creates a store backed by the file at path.
func NewCSVClientStore(path string) *CSVClientStore {
	return &CSVClientStore{path: path}
}

// Load reads the full client set. Malformed rows and malformed individual
// timestamps are skipped with a warning; a data error never fails the load
// as a whole. A missing file yields an empty set.
func (s *CSVClientStore) Load(_ context.Context) ([]models.ClientRecord, error) {
	logger := utils.GetLogger()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return []models.ClientRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open client file %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // validated per row below
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read client file %s: %w", s.path, err)
	}

	var records []models.ClientRecord
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "name" {
			continue // header
		}
		rec, ok := decodeRow(row)
		if !ok {
			logger.Warn("skipping malformed client row",
				zap.String("file", s.path), zap.Int("line", i+1))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save rewrites the whole file from the given snapshot. The write goes to a
// temp file first so a crash mid-write cannot truncate the previous state.
func (s *CSVClientStore) Save(_ context.Context, records []models.ClientRecord) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp client file: %w", err)
	}
	defer os.Remove(tmp.Name())

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write client file header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			rec.Name,
			rec.Email,
			strconv.Itoa(rec.TotalSessions),
			strconv.Itoa(rec.SessionsCompleted),
			strconv.Itoa(rec.SessionsRemaining),
			strings.Join(rec.BookedSessions, ";"),
			strconv.FormatBool(rec.PaymentReminderSent),
		}
		if err := writer.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write client row for %s: %w", rec.Name, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush client file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp client file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace client file %s: %w", s.path, err)
	}
	return nil
}

// decodeRow turns one CSV row into a record. The reminder column is
// optional so files written before it existed still load.
func decodeRow(row []string) (models.ClientRecord, bool) {
	if len(row) < 6 {
		return models.ClientRecord{}, false
	}
	name := strings.TrimSpace(row[0])
	if name == "" {
		return models.ClientRecord{}, false
	}

	total, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil || total < 0 {
		return models.ClientRecord{}, false
	}
	completed, err := strconv.Atoi(strings.TrimSpace(row[3]))
	if err != nil || completed < 0 {
		return models.ClientRecord{}, false
	}
	remaining, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil || remaining < 0 {
		return models.ClientRecord{}, false
	}
	// Legacy files edited by hand can drift; remaining is re-derived so the
	// counter invariant holds from the first mutation on.
	if completed+remaining != total {
		remaining = total - completed
		if remaining < 0 {
			remaining = 0
		}
		utils.GetLogger().Warn("rebalanced session counters on load", zap.String("client", name))
	}

	var booked []string
	if row[5] != "" {
		booked = strings.Split(row[5], ";")
	}

	rec := models.ClientRecord{
		Name:              name,
		Email:             strings.TrimSpace(row[1]),
		TotalSessions:     total,
		SessionsCompleted: completed,
		SessionsRemaining: remaining,
		BookedSessions:    sanitizeBookings(name, booked),
	}
	if len(row) >= 7 {
		rec.PaymentReminderSent = strings.TrimSpace(row[6]) == "true"
	}
	return rec, true
}
