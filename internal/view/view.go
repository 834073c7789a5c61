// Package view turns stored documents into what clients see: ids of users,
// topics and responses are replaced with display names. It only reads.
package view

import (
	"context"
	"time"

	"github.com/alphabot-ai/stance/internal/model"
)

// UsernameResolver maps user ids to usernames positionally.
type UsernameResolver interface {
	IDsToUsernames(ctx context.Context, ids []string) ([]string, error)
}

// TitleResolver maps topic or response ids to titles positionally.
type TitleResolver interface {
	IDsToTitles(ctx context.Context, ids []string) ([]string, error)
}

// Formatter renders documents. TopicTitles resolves topic ids,
// ResponseTitles any response id regardless of its kind.
type Formatter struct {
	Usernames      UsernameResolver
	TopicTitles    TitleResolver
	ResponseTitles TitleResolver
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Topic struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Response carries the target id and its display title.
type Response struct {
	ID          string     `json:"id"`
	Kind        model.Kind `json:"kind"`
	Author      string     `json:"author"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Target      string     `json:"target"`
	TargetTitle string     `json:"targetTitle"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Side struct {
	ID        string       `json:"id"`
	Author    string       `json:"author"`
	Topic     string       `json:"topic"`
	Degree    model.Degree `json:"degree"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Label lists the titles of the items carrying it.
type Label struct {
	ID        string     `json:"id"`
	Kind      model.Kind `json:"kind"`
	Author    string     `json:"author"`
	Title     string     `json:"title"`
	Items     []string   `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type FriendRequest struct {
	ID        string                    `json:"id"`
	From      string                    `json:"from"`
	To        string                    `json:"to"`
	Status    model.FriendRequestStatus `json:"status"`
	CreatedAt time.Time                 `json:"createdAt"`
	UpdatedAt time.Time                 `json:"updatedAt"`
}

// User drops the password hash.
func (f *Formatter) User(u model.User) User {
	return User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func (f *Formatter) Users(users []model.User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = f.User(u)
	}
	return out
}

func (f *Formatter) Topic(ctx context.Context, t model.Topic) (Topic, error) {
	out, err := f.Topics(ctx, []model.Topic{t})
	if err != nil {
		return Topic{}, err
	}
	return out[0], nil
}

func (f *Formatter) Topics(ctx context.Context, topics []model.Topic) ([]Topic, error) {
	authors, err := f.Usernames.IDsToUsernames(ctx, collect(topics, func(t model.Topic) string { return t.Author }))
	if err != nil {
		return nil, err
	}
	out := make([]Topic, len(topics))
	for i, t := range topics {
		out[i] = Topic{
			ID:          t.ID,
			Author:      authors[i],
			Title:       t.Title,
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
			UpdatedAt:   t.UpdatedAt,
		}
	}
	return out, nil
}

func (f *Formatter) Response(ctx context.Context, r model.Response) (Response, error) {
	out, err := f.Responses(ctx, []model.Response{r})
	if err != nil {
		return Response{}, err
	}
	return out[0], nil
}

// Responses renders responses of either kind. Targets are resolved per kind
// and merged back in order.
func (f *Formatter) Responses(ctx context.Context, responses []model.Response) ([]Response, error) {
	authors, err := f.Usernames.IDsToUsernames(ctx, collect(responses, func(r model.Response) string { return r.Author }))
	if err != nil {
		return nil, err
	}

	titles := make([]string, len(responses))
	for _, kind := range []model.Kind{model.KindTopic, model.KindResponse} {
		var idx []int
		var ids []string
		for i, r := range responses {
			if r.Kind == kind {
				idx = append(idx, i)
				ids = append(ids, r.Target)
			}
		}
		if len(ids) == 0 {
			continue
		}
		resolved, err := f.titles(kind).IDsToTitles(ctx, ids)
		if err != nil {
			return nil, err
		}
		for j, i := range idx {
			titles[i] = resolved[j]
		}
	}

	out := make([]Response, len(responses))
	for i, r := range responses {
		out[i] = Response{
			ID:          r.ID,
			Kind:        r.Kind,
			Author:      authors[i],
			Title:       r.Title,
			Content:     r.Content,
			Target:      r.Target,
			TargetTitle: titles[i],
			CreatedAt:   r.CreatedAt,
			UpdatedAt:   r.UpdatedAt,
		}
	}
	return out, nil
}

func (f *Formatter) Side(ctx context.Context, s model.Side) (Side, error) {
	out, err := f.Sides(ctx, []model.Side{s})
	if err != nil {
		return Side{}, err
	}
	return out[0], nil
}

func (f *Formatter) Sides(ctx context.Context, sides []model.Side) ([]Side, error) {
	authors, err := f.Usernames.IDsToUsernames(ctx, collect(sides, func(s model.Side) string { return s.User }))
	if err != nil {
		return nil, err
	}
	topics, err := f.TopicTitles.IDsToTitles(ctx, collect(sides, func(s model.Side) string { return s.Issue }))
	if err != nil {
		return nil, err
	}
	out := make([]Side, len(sides))
	for i, s := range sides {
		out[i] = Side{
			ID:        s.ID,
			Author:    authors[i],
			Topic:     topics[i],
			Degree:    s.Degree,
			CreatedAt: s.CreatedAt,
			UpdatedAt: s.UpdatedAt,
		}
	}
	return out, nil
}

func (f *Formatter) Label(ctx context.Context, l model.Label) (Label, error) {
	out, err := f.Labels(ctx, []model.Label{l})
	if err != nil {
		return Label{}, err
	}
	return out[0], nil
}

// Labels resolves the items of each label separately.
func (f *Formatter) Labels(ctx context.Context, labels []model.Label) ([]Label, error) {
	authors, err := f.Usernames.IDsToUsernames(ctx, collect(labels, func(l model.Label) string { return l.Author }))
	if err != nil {
		return nil, err
	}
	out := make([]Label, len(labels))
	for i, l := range labels {
		items, err := f.titles(l.Kind).IDsToTitles(ctx, l.Items)
		if err != nil {
			return nil, err
		}
		out[i] = Label{
			ID:        l.ID,
			Kind:      l.Kind,
			Author:    authors[i],
			Title:     l.Title,
			Items:     items,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		}
	}
	return out, nil
}

func (f *Formatter) FriendRequests(ctx context.Context, requests []model.FriendRequest) ([]FriendRequest, error) {
	ids := make([]string, 0, 2*len(requests))
	for _, r := range requests {
		ids = append(ids, r.From)
	}
	for _, r := range requests {
		ids = append(ids, r.To)
	}
	names, err := f.Usernames.IDsToUsernames(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]FriendRequest, len(requests))
	for i, r := range requests {
		out[i] = FriendRequest{
			ID:        r.ID,
			From:      names[i],
			To:        names[i+len(requests)],
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return out, nil
}

func (f *Formatter) titles(kind model.Kind) TitleResolver {
	if kind == model.KindTopic {
		return f.TopicTitles
	}
	return f.ResponseTitles
}

func collect[T any](items []T, key func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = key(item)
	}
	return out
}
