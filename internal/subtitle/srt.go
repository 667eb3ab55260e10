package subtitle

import (
	"fmt"
	"strconv"
	"strings"

	"kotoba/internal/services"
)

func parseSRT(data []byte) ([]Cue, error) {
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, nil
	}

	var cues []Cue
	for _, block := range strings.Split(trimmed, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) == 0 {
			continue
		}
		idx := 0
		if isNumeric(lines[idx]) {
			idx++
		}
		if idx >= len(lines) || !strings.Contains(lines[idx], "-->") {
			continue
		}
		start, end, err := parseSRTRange(lines[idx])
		if err != nil {
			return nil, services.Wrap(services.ErrParse, "parser", "srt timestamp", "", err)
		}
		idx++
		text := strings.Join(lines[idx:], " ")
		cues = append(cues, Cue{StartSeconds: start, EndSeconds: end, Text: text})
	}
	return cues, nil
}

func parseSRTRange(line string) (float64, float64, error) {
	parts := strings.Split(line, "-->")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid timestamp line %q", line)
	}
	start, err := parseSRTTimestamp(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := parseSRTTimestamp(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// SRT standard uses a comma for milliseconds; tolerate a period.
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	_, err := strconv.Atoi(value)
	return err == nil
}
