package registry

import (
	"sort"
	"time"
)

// Usage is one row of the usage ranking
type Usage struct {
	Name       string `json:"name"`
	UseCount   int    `json:"use_count"`
	LastUsedAt string `json:"last_used_at,omitempty"`
}

// Stats summarises how environments are used
type Stats struct {
	Environments  int           `json:"environments"`
	TotalSwitches int           `json:"total_switches"`
	TopUsed       []Usage       `json:"top_used"`
	NeverUsed     []string      `json:"never_used"`
	LastSwitch    *HistoryEntry `json:"last_switch,omitempty"`
	HistorySize   int           `json:"history_size"`
}

// Stats computes usage statistics. top limits TopUsed; non-positive means all.
func (r *Registry) Stats(top int) (*Stats, error) {
	doc, err := r.store.Load()
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Environments: len(doc.Environments),
		TopUsed:      []Usage{},
		NeverUsed:    []string{},
		HistorySize:  len(doc.History),
	}

	for _, env := range doc.Environments {
		st.TotalSwitches += env.UseCount
		if env.UseCount == 0 {
			st.NeverUsed = append(st.NeverUsed, env.Name)
			continue
		}
		u := Usage{Name: env.Name, UseCount: env.UseCount}
		if env.LastUsedAt != nil {
			u.LastUsedAt = env.LastUsedAt.Format(time.RFC3339)
		}
		st.TopUsed = append(st.TopUsed, u)
	}

	sort.Strings(st.NeverUsed)
	sort.Slice(st.TopUsed, func(i, j int) bool {
		if st.TopUsed[i].UseCount == st.TopUsed[j].UseCount {
			return st.TopUsed[i].Name < st.TopUsed[j].Name
		}
		return st.TopUsed[i].UseCount > st.TopUsed[j].UseCount
	})
	if top > 0 && len(st.TopUsed) > top {
		st.TopUsed = st.TopUsed[:top]
	}

	if n := len(doc.History); n > 0 {
		last := doc.History[n-1]
		st.LastSwitch = &last
	}
	return st, nil
}
