package export

import (
	"sort"

	"github.com/eventease/manager/pkg/model"
	"golang.org/x/exp/maps"
)

// Table is a tabular projection of attendee records, ready for CSV rendering.
type Table struct {
	Header []string
	Rows   [][]string
}

const timestampLayout = "2006-01-02 15:04"

var coreColumns = []string{"Name", "Email", "Phone", "RSVP Date"}

// EventProjection projects the attendees of one event into a table. Custom columns follow the
// event's field definitions in definition order. Attribute map keys without a definition are
// omitted and missing answers render as empty cells, since organizers can change the definitions
// after attendees have already RSVP'd.
func EventProjection(event *model.Event, attendees []*model.Attendee) Table {
	header := make([]string, 0, len(coreColumns)+len(event.CustomFields))
	header = append(header, coreColumns...)
	for _, field := range event.CustomFields {
		header = append(header, field.Name)
	}

	rows := make([][]string, 0, len(attendees))
	for _, attendee := range attendees {
		row := coreCells(attendee)
		for _, field := range event.CustomFields {
			row = append(row, attendee.Fields[field.Name].String())
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

// AggregateProjection projects attendees across events into one table. The custom columns are the
// sorted union of all attribute map keys so every stored answer shows up somewhere, even answers
// to fields that no longer exist on their event.
func AggregateProjection(attendees []*model.Attendee) Table {
	keys := map[string]struct{}{}
	for _, attendee := range attendees {
		for key := range attendee.Fields {
			keys[key] = struct{}{}
		}
	}
	columns := maps.Keys(keys)
	sort.Strings(columns)

	header := make([]string, 0, 1+len(coreColumns)+len(columns))
	header = append(header, "Event")
	header = append(header, coreColumns...)
	header = append(header, columns...)

	rows := make([][]string, 0, len(attendees))
	for _, attendee := range attendees {
		row := make([]string, 0, len(header))
		if attendee.Event != nil {
			row = append(row, attendee.Event.Title)
		} else {
			row = append(row, "")
		}
		row = append(row, coreCells(attendee)...)
		for _, column := range columns {
			row = append(row, attendee.Fields[column].String())
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

func coreCells(attendee *model.Attendee) []string {
	return []string{
		attendee.Name,
		attendee.Email,
		attendee.Phone,
		attendee.CreatedAt.Format(timestampLayout),
	}
}
