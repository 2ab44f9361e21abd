package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	helpers "pawstails/internal/utils/helpres"
)

// zapcore.ISO8601TimeEncoder
const logTimeLayout = "2006-01-02T15:04:05.000Z0700"

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AdminLogsHandler reads the JSON log files written by the rotating logger:
// the live app.log and the app-<timestamp>.log[.gz] backups.
type AdminLogsHandler struct {
	LogDir    string
	Retention int
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	if logDir == "" {
		logDir = "logs"
	}
	return &AdminLogsHandler{LogDir: logDir, Retention: 7}
}

// ListDays godoc
// @Summary Days with log files
// @Tags admin-logs
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Local()
	days := []string{}
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format(time.DateOnly)
		if files, err := h.filesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.JSON(w, http.StatusOK, map[string][]string{"days": days})
}

// GetLogs godoc
// @Summary Log entries of one day
// @Tags admin-logs
// @Security ApiKeyAuth
// @Produce json
// @Param day query string true "Day (YYYY-MM-DD)"
// @Param level query string false "Comma separated levels: debug,info,warn,error"
// @Param q query string false "Substring filter"
// @Param limit query int false "Page size (default 200, max 1000)"
// @Param cursor query int false "Lines to skip"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} helpers.Response "day not found"
// @Router /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	day := query.Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "Invalid day")
		return
	}

	levels := upperSet(query.Get("level"))
	needle := strings.ToLower(strings.TrimSpace(query.Get("q")))
	limit := clampAtoi(query.Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(query.Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := []json.RawMessage{}
	err := h.forEachLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if needle != "" && !strings.Contains(strings.ToLower(string(raw)), needle) {
			return true
		}
		var entry struct {
			Level string `json:"level"`
		}
		if json.Unmarshal(raw, &entry) != nil {
			return true
		}
		if len(levels) > 0 && !levels[strings.ToUpper(entry.Level)] {
			return true
		}
		items = append(items, append(json.RawMessage{}, raw...))
		return len(items) < limit
	})
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "Day not found")
		return
	}

	helpers.JSON(w, http.StatusOK, map[string]any{
		"day":        day,
		"items":      items,
		"nextCursor": lineNo,
	})
}

// Stats godoc
// @Summary Hourly log counts by level
// @Tags admin-logs
// @Security ApiKeyAuth
// @Produce json
// @Param day query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Router /api/admin/logs/stats [get]
func (h *AdminLogsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "Invalid day")
		return
	}

	stats := make(map[int]map[string]int, 24)
	for hr := 0; hr < 24; hr++ {
		stats[hr] = map[string]int{}
	}
	_ = h.forEachLine(day, func(raw []byte) bool {
		var entry struct {
			Time  string `json:"time"`
			Level string `json:"level"`
		}
		if json.Unmarshal(raw, &entry) != nil || entry.Level == "" {
			return true
		}
		if t, err := time.Parse(logTimeLayout, entry.Time); err == nil {
			stats[t.Hour()][strings.ToUpper(entry.Level)]++
		}
		return true
	})

	helpers.JSON(w, http.StatusOK, map[string]any{"day": day, "stats": stats})
}

// filesForDay lists the backups whose name carries day, plus app.log when day
// is today.
func (h *AdminLogsHandler) filesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := time.Now().Local().Format(time.DateOnly)

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		switch {
		case name == "app.log" && day == today:
			files = append(files, filepath.Join(h.LogDir, name))
		case strings.HasPrefix(name, "app-"+day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".gz")):
			files = append(files, filepath.Join(h.LogDir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (h *AdminLogsHandler) forEachLine(day string, handle func([]byte) bool) error {
	files, err := h.filesForDay(day)
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}

	for _, path := range files {
		if !scanFile(path, handle) {
			break
		}
	}
	return nil
}

// scanFile reports false once handle asked to stop.
func scanFile(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gz.Close()
		reader = gz
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func upperSet(csv string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func clampAtoi(s string, def, min, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
