package services

import (
	"github.com/kikgames18/service-kpi-dashboard/models"
)

// NoChanges is the placeholder entry returned when a record carries nothing
// to describe. Callers never receive an empty summary.
const NoChanges = "—"

const (
	passwordChangedEntry = "Смена пароля"
	unassignedLabel      = "Не назначен"
)

// trackedFields is the fixed set of fields compared between snapshots,
// in the order their entries appear in a summary. Fields absent from an
// entity's schema compare null-to-null and never produce an entry.
var trackedFields = []string{
	"status",
	"priority",
	"customer_name",
	"device_type",
	"full_name",
	"specialization",
	"is_active",
	"issue_description",
	"assigned_to",
	"email",
}

var fieldLabels = map[string]string{
	"status":            "Статус",
	"priority":          "Приоритет",
	"customer_name":     "Клиент",
	"device_type":       "Устройство",
	"full_name":         "Полное имя",
	"specialization":    "Специализация",
	"is_active":         "Статус",
	"issue_description": "Описание проблемы",
	"assigned_to":       "ФИО",
	"email":             "Email",
}

// Display labels for enumerated field codes. Unknown codes pass through.
var statusLabels = map[string]string{
	models.StatusPending:    "Ожидает",
	models.StatusInProgress: "В работе",
	models.StatusCompleted:  "Завершено",
	models.StatusCancelled:  "Отменено",
}

var priorityLabels = map[string]string{
	models.PriorityLow:    "Низкий",
	models.PriorityNormal: "Обычный",
	models.PriorityHigh:   "Высокий",
	models.PriorityUrgent: "Срочный",
}

var deviceTypeLabels = map[string]string{
	models.DeviceComputer:  "Компьютер",
	models.DeviceLaptop:    "Ноутбук",
	models.DeviceHousehold: "Бытовая техника",
	models.DevicePhone:     "Телефон",
	models.DeviceOther:     "Прочее",
}

var specializationLabels = map[string]string{
	models.SpecComputer:  "Компьютеры",
	models.SpecHousehold: "Бытовая техника",
	models.SpecMobile:    "Мобильные устройства",
	models.SpecUniversal: "Универсал",
}

// DescribeChanges renders the human-readable summary of what changed
// between a record's snapshots. It is a pure function of the record:
// calling it twice yields identical output, and it never mutates the
// record.
//
// Create records and records missing a snapshot have nothing to diff:
// the caller shows the entity info instead, so they get the placeholder,
// exactly like an update that changed nothing.
func DescribeChanges(record *models.ChangeRecord) []string {
	if record.Action == models.ActionCreate || record.OldValues == nil || record.NewValues == nil {
		return []string{NoChanges}
	}

	oldVals, newVals := record.OldValues, record.NewValues
	var changes []string

	// Password changes are reported as a fixed synthetic entry; the
	// snapshots carry only the marker, never a credential value.
	if record.EntityType == models.EntityProfile &&
		(oldVals.Get("password_changed").Truthy() || newVals.Get("password_changed").Truthy()) {
		changes = append(changes, passwordChangedEntry)
	}

	for _, field := range trackedFields {
		if field == "assigned_to" {
			if entry, ok := describeAssignment(oldVals, newVals); ok {
				changes = append(changes, entry)
			}
			continue
		}

		oldVal := oldVals.Get(field)
		newVal := newVals.Get(field)
		if oldVal.Equal(newVal) {
			continue
		}

		changes = append(changes,
			fieldLabels[field]+": "+displayField(field, oldVal)+" → "+displayField(field, newVal))
	}

	if len(changes) == 0 {
		return []string{NoChanges}
	}
	return changes
}

// displayField renders one field value with its field-specific transform
func displayField(field string, v models.FieldValue) string {
	switch field {
	case "status":
		return enumLabel(statusLabels, v)
	case "priority":
		return enumLabel(priorityLabels, v)
	case "device_type":
		return enumLabel(deviceTypeLabels, v)
	case "specialization":
		return enumLabel(specializationLabels, v)
	case "is_active":
		if v.Truthy() {
			return "Активен"
		}
		return "Неактивен"
	default:
		return v.Display()
	}
}

func enumLabel(table map[string]string, v models.FieldValue) string {
	code := v.Display()
	if label, ok := table[code]; ok {
		return label
	}
	return code
}

// describeAssignment handles the assigned_to relation. Identity equality
// of the identifiers is authoritative: equal ids emit nothing regardless
// of the name text. Names come from the technician_name companion field
// captured alongside the snapshot, since the technician may have been
// reassigned or deleted since. When both sides render as unassigned the
// entry is suppressed: legacy records were captured without names, and
// showing "unassigned → unassigned" for them is pure noise.
func describeAssignment(oldVals, newVals models.Snapshot) (string, bool) {
	oldID := oldVals.Get("assigned_to")
	newID := newVals.Get("assigned_to")
	if oldID.Equal(newID) {
		return "", false
	}

	oldName := assignmentName(oldVals, oldID)
	newName := assignmentName(newVals, newID)

	switch {
	case oldName == unassignedLabel && newName == unassignedLabel:
		return "", false
	case oldName == unassignedLabel:
		return "Был техник не назначен → стал " + newName, true
	case newName == unassignedLabel:
		return "Был техник " + oldName + " → стал не назначен", true
	case oldName != newName:
		return "Был техник " + oldName + " → стал " + newName, true
	default:
		return "", false
	}
}

func assignmentName(s models.Snapshot, id models.FieldValue) string {
	if !id.Truthy() {
		return unassignedLabel
	}
	if name, ok := s.Get("technician_name").Text(); ok && name != "" {
		return name
	}
	return unassignedLabel
}

// InfoEntry is one label/value pair of display context shown next to a
// change record, independent of what changed.
type InfoEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// EntityInfo derives the entity-specific info block from whichever snapshot
// is available, preferring the after-snapshot.
func EntityInfo(record *models.ChangeRecord) []InfoEntry {
	values := record.NewValues
	if values == nil {
		values = record.OldValues
	}
	if values == nil {
		return nil
	}

	var info []InfoEntry

	switch record.EntityType {
	case models.EntityOrder:
		if name, ok := values.Get("customer_name").Text(); ok && name != "" {
			info = append(info, InfoEntry{Label: "Клиент", Value: name})
		}
		if device := values.Get("device_type"); device.Truthy() {
			value := enumLabel(deviceTypeLabels, device)
			if brand, ok := values.Get("device_brand").Text(); ok && brand != "" {
				value += " " + brand
			}
			if model, ok := values.Get("device_model").Text(); ok && model != "" {
				value += " " + model
			}
			info = append(info, InfoEntry{Label: "Устройство", Value: value})
		}
	case models.EntityTechnician:
		if name, ok := values.Get("full_name").Text(); ok && name != "" {
			info = append(info, InfoEntry{Label: "ФИО", Value: name})
		}
		if hireDate, ok := values.Get("hire_date").Text(); ok && hireDate != "" {
			value := hireDate
			if date, err := models.ParseDate(hireDate); err == nil {
				value = models.FormatDateRU(date)
			}
			info = append(info, InfoEntry{Label: "Дата найма", Value: value})
		}
	}

	return info
}
