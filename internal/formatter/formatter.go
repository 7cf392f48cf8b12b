// package formatter provides display and export formatting for library data.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/apmusic/apmusic/internal/models"
)

// Duration renders a position or duration in seconds as m:ss for the
// player bar. Unknown values (NaN, negative) render as --:--.
func Duration(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		return "--:--"
	}

	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// SongsToCSV exports songs with columns: ID, Title, MimeType, DateAdded.
func SongsToCSV(songs []models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "MimeType", "DateAdded"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			strconv.FormatInt(song.SongID, 10),
			song.Title,
			song.MimeType,
			song.DateAdded.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
