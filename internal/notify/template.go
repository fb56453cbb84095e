package notify

import (
	"strings"

	"github.com/smilemore/clinic-scheduler/internal/models"
)

// Render substitutes {{placeholder}} tokens into the template body,
// choosing the Hebrew body when the patient's notification language
// flag is set and the Russian body otherwise.
func Render(tpl *models.WaTemplate, hebrew bool, data map[string]string) string {
	body := tpl.BodyRu
	if hebrew {
		body = tpl.BodyHe
	}

	for key, value := range data {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body
}
