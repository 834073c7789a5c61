package view

import "context"

// Chain resolves titles through several resolvers in turn. An id that a
// resolver reports as Missing is handed to the next one; ids missing from
// all of them stay Missing.
type Chain struct {
	Resolvers []TitleResolver
	Missing   string
}

func (c Chain) IDsToTitles(ctx context.Context, ids []string) ([]string, error) {
	titles := make([]string, len(ids))
	for i := range titles {
		titles[i] = c.Missing
	}
	pending := make([]int, len(ids))
	for i := range pending {
		pending[i] = i
	}
	for _, r := range c.Resolvers {
		if len(pending) == 0 {
			break
		}
		ask := make([]string, len(pending))
		for j, i := range pending {
			ask[j] = ids[i]
		}
		got, err := r.IDsToTitles(ctx, ask)
		if err != nil {
			return nil, err
		}
		var next []int
		for j, i := range pending {
			if got[j] == c.Missing {
				next = append(next, i)
				continue
			}
			titles[i] = got[j]
		}
		pending = next
	}
	return titles, nil
}
