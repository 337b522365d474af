package export

import (
	exportJSON "github.com/robalyx/collegemsg/internal/export/json"
	"github.com/robalyx/collegemsg/internal/graph"
	"github.com/robalyx/collegemsg/internal/message"
)

// DumpHourJSON writes the hour-of-day graphs of msgs to path. Nodes carry no
// degree.
func DumpHourJSON(msgs []message.Message, path string, indent int) error {
	return dump(graph.ByHour, msgs, path, indent)
}

// DumpWeekdayJSON writes the day-of-week graphs of msgs to path. Nodes carry
// their degree.
func DumpWeekdayJSON(msgs []message.Message, path string, indent int) error {
	return dump(graph.ByWeekday, msgs, path, indent)
}

func dump(bucketing graph.Bucketing, msgs []message.Message, path string, indent int) error {
	split, err := bucketing.Split(msgs)
	if err != nil {
		return err
	}

	return exportJSON.Write(path, split.Data, indent)
}
