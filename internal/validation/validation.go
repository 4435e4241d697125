package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/tracklit/internal/constants"
	"github.com/julianstephens/tracklit/internal/errors"
	"github.com/julianstephens/tracklit/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName            ConflictType = "empty_name"
	ConflictNameTooLong          ConflictType = "name_too_long"
	ConflictInvalidColor         ConflictType = "invalid_color"
	ConflictInvalidEmoji         ConflictType = "invalid_emoji"
	ConflictInvalidSchedule      ConflictType = "invalid_schedule"
	ConflictDuplicateCategory    ConflictType = "duplicate_category"
	ConflictDuplicateTrackerName ConflictType = "duplicate_tracker_name"
	ConflictUnknownCategory      ConflictType = "unknown_category"
	ConflictOrphanedRecord       ConflictType = "orphaned_record"
)

// Conflict is one problem found in input or stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // names or titles involved
	TrackerIDs  []string // IDs of trackers involved (for auto-fixing)
	Day         string   // YYYY-MM-DD, for record conflicts
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string
	SourceConflict Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Err converts the result into a domain error. A duplicate category wins
// over other conflicts so callers can match ErrDuplicateCategory.
func (vr *ValidationResult) Err() error {
	if !vr.HasConflicts() {
		return nil
	}
	descriptions := make([]string, 0, len(vr.Conflicts))
	for _, c := range vr.Conflicts {
		if c.Type == ConflictDuplicateCategory && len(c.Items) > 0 {
			return errors.Duplicate(c.Items[0])
		}
		descriptions = append(descriptions, c.Description)
	}
	return errors.Invalid("%s", strings.Join(descriptions, "; "))
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator validates tracker and category input and stored snapshots
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NormalizeTitle trims surrounding whitespace from a name or category title
func NormalizeTitle(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) checkName(result *ValidationResult, kind, name string, max int) {
	if name == "" {
		result.add(Conflict{
			Type:        ConflictEmptyName,
			Description: fmt.Sprintf("%s must not be empty", kind),
		})
		return
	}
	if n := utf8.RuneCountInString(name); n > max {
		result.add(Conflict{
			Type:        ConflictNameTooLong,
			Description: fmt.Sprintf("%s \"%s\" is %d characters long (limit %d)", kind, name, n, max),
			Items:       []string{name},
		})
	}
}

// ValidateTracker checks a tracker before it is created or replaced. Name and
// category are expected to be normalized already.
func (v *Validator) ValidateTracker(tracker models.Tracker) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.checkName(&result, "Tracker name", tracker.Name, constants.MaxTrackerNameLen)
	v.checkName(&result, "Category title", tracker.Category, constants.MaxCategoryNameLen)

	if tracker.Color != "" && !hexColor.MatchString(tracker.Color) {
		result.add(Conflict{
			Type:        ConflictInvalidColor,
			Description: fmt.Sprintf("Tracker \"%s\" has invalid color %q (expected #RRGGBB)", tracker.Name, tracker.Color),
			Items:       []string{tracker.Name},
		})
	}

	if len(tracker.Emoji) > constants.MaxEmojiBytes || strings.ContainsAny(tracker.Emoji, " \t\n") {
		result.add(Conflict{
			Type:        ConflictInvalidEmoji,
			Description: fmt.Sprintf("Tracker \"%s\" has invalid emoji %q", tracker.Name, tracker.Emoji),
			Items:       []string{tracker.Name},
		})
	}

	for _, d := range tracker.Schedule {
		if !d.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidSchedule,
				Description: fmt.Sprintf("Tracker \"%s\" has invalid weekday %d", tracker.Name, int(d)),
				Items:       []string{tracker.Name},
			})
		}
	}

	return result
}

// ValidateCategoryTitle checks a new category title against the existing
// categories. Titles are compared exactly after trimming.
func (v *Validator) ValidateCategoryTitle(title string, existing []models.Category) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	v.checkName(&result, "Category title", title, constants.MaxCategoryNameLen)
	if result.HasConflicts() {
		return result
	}

	for _, c := range existing {
		if NormalizeTitle(c.Title) == title {
			result.add(Conflict{
				Type:        ConflictDuplicateCategory,
				Description: fmt.Sprintf("Category \"%s\" already exists", title),
				Items:       []string{title},
			})
			break
		}
	}
	return result
}

// ValidateSnapshot checks stored data for duplicate tracker names within a
// category, trackers whose category is missing and records whose tracker is
// gone. None of these stop the board from loading.
func (v *Validator) ValidateSnapshot(categories []models.Category, trackers []models.Tracker, records []models.TrackerRecord, loc *time.Location) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	titles := make(map[string]bool, len(categories))
	for _, c := range categories {
		titles[c.Title] = true
	}

	known := make(map[string]bool, len(trackers))
	byName := make(map[string][]string)
	for _, t := range trackers {
		known[t.ID] = true
		key := t.Category + "\x00" + t.Name
		byName[key] = append(byName[key], t.ID)

		if !titles[t.Category] {
			result.add(Conflict{
				Type:        ConflictUnknownCategory,
				Description: fmt.Sprintf("Tracker \"%s\" references missing category \"%s\"", t.Name, t.Category),
				Items:       []string{t.Name, t.Category},
				TrackerIDs:  []string{t.ID},
			})
		}
	}

	keys := make([]string, 0, len(byName))
	for k := range byName {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ids := byName[k]
		if len(ids) < 2 {
			continue
		}
		parts := strings.SplitN(k, "\x00", 2)
		result.add(Conflict{
			Type:        ConflictDuplicateTrackerName,
			Description: fmt.Sprintf("Duplicate tracker name \"%s\" in category \"%s\" (IDs: %v)", parts[1], parts[0], ids),
			Items:       []string{parts[1]},
			TrackerIDs:  ids,
		})
	}

	for _, r := range records {
		if known[r.TrackerID] {
			continue
		}
		day := r.Day(loc)
		result.add(Conflict{
			Type:        ConflictOrphanedRecord,
			Description: fmt.Sprintf("Completion on %s belongs to unknown tracker %s", day, r.TrackerID),
			TrackerIDs:  []string{r.TrackerID},
			Day:         day,
		})
	}

	return result
}

// AutoFixOrphanedRecords deletes the records named by orphaned-record
// conflicts. Other conflict types are left for the user.
func AutoFixOrphanedRecords(conflicts []Conflict, deleteFunc func(trackerID, day string) error) []FixAction {
	var actions []FixAction
	for _, c := range conflicts {
		if c.Type != ConflictOrphanedRecord || len(c.TrackerIDs) == 0 || c.Day == "" {
			continue
		}
		id := c.TrackerIDs[0]
		if err := deleteFunc(id, c.Day); err != nil {
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Failed to delete orphaned record %s/%s: %v", id, c.Day, err),
				SourceConflict: c,
			})
			continue
		}
		actions = append(actions, FixAction{
			Action:         fmt.Sprintf("Deleted orphaned record %s/%s", id, c.Day),
			SourceConflict: c,
		})
	}
	return actions
}
