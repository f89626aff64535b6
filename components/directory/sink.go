package directory

import (
	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/directory/dircore"
)

type notification struct {
	added    bool
	instance string
}

// tableSink applies the backend changes to the instance table.
//
// Remarks:
//   - Called by the backend while the directory lock is held, the listener
//     notifications are only collected here.
type tableSink struct {
	service   string
	instances *dircore.InstanceTable
	notes     []notification
}

func (s *tableSink) HandleAdded(instance string, values *dircore.ValueStore) {
	s.set(instance, values)
}

func (s *tableSink) HandleUpdated(instance string, values *dircore.ValueStore) {
	s.set(instance, values)
}

func (s *tableSink) HandleRemoved(instance string) {
	if !s.instances.Remove(instance) {
		return
	}

	core.LogInf.Printf("directory: instance removed: service=%s instance=%s\n",
		s.service, instance)

	s.notes = append(s.notes, notification{instance: instance})
}

func (s *tableSink) set(instance string, values *dircore.ValueStore) {
	if !s.instances.Set(instance, values) {
		return
	}

	core.LogInf.Printf("directory: instance added: service=%s instance=%s\n",
		s.service, instance)

	s.notes = append(s.notes, notification{added: true, instance: instance})
}

func (s *tableSink) takeNotes() []notification {
	notes := s.notes
	s.notes = nil

	return notes
}
