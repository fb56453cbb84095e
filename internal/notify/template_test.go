package notify

import (
	"testing"

	"github.com/smilemore/clinic-scheduler/internal/models"
)

func TestRenderPicksLanguageBody(t *testing.T) {
	tpl := &models.WaTemplate{
		Code:   "appointment_reminder",
		BodyRu: "{{patient}}, ждём вас {{date}} в {{time}} в {{clinic}}",
		BodyHe: "{{patient}}, מחכים לך ב-{{date}} בשעה {{time}} ב{{clinic}}",
	}

	data := map[string]string{
		"patient": "Anna Ivanova",
		"date":    "03.03.2026",
		"time":    "10:00",
		"clinic":  "Smile More Clinic",
	}

	ru := Render(tpl, false, data)
	if ru != "Anna Ivanova, ждём вас 03.03.2026 в 10:00 в Smile More Clinic" {
		t.Fatalf("russian render wrong: %q", ru)
	}

	he := Render(tpl, true, data)
	if he != "Anna Ivanova, מחכים לך ב-03.03.2026 בשעה 10:00 בSmile More Clinic" {
		t.Fatalf("hebrew render wrong: %q", he)
	}
}

func TestRenderLeavesUnknownPlaceholders(t *testing.T) {
	tpl := &models.WaTemplate{BodyRu: "Hello {{patient}}, see {{unknown}}"}

	got := Render(tpl, false, map[string]string{"patient": "Anna"})
	if got != "Hello Anna, see {{unknown}}" {
		t.Fatalf("render = %q", got)
	}
}
