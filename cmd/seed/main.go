package main

import (
	"flag"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/alphabot-ai/stance/internal/client"
	"github.com/alphabot-ai/stance/internal/model"
)

var users = []string{"alice", "bob", "carol", "dave", "erin"}

var topics = []struct {
	title       string
	description string
}{
	{"Tabs or spaces", "Indentation, once and for all."},
	{"Should cities ban cars downtown", "Pedestrian zones versus access for everyone."},
	{"Is remote work here to stay", "Offices are reopening. Are we going back?"},
	{"Pineapple on pizza", "A question of taste or of principle."},
	{"Four-day work week", "Same output, one fewer day?"},
}

var takes = []struct {
	title   string
	content string
}{
	{"Strongly for", "The evidence I have seen points clearly one way."},
	{"It depends", "Context matters more than the headline suggests."},
	{"Hard no", "The costs are consistently underestimated."},
	{"Tried it", "Speaking from experience, it went better than expected."},
	{"Missing the point", "Both camps are arguing about the wrong thing."},
	{"Numbers please", "Has anyone measured this rather than guessed?"},
}

var labels = []string{"hot", "evergreen", "local"}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Server URL")
	password := flag.String("password", "seed-password", "Password for every seeded user")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	log.Infof("seeding %s", *baseURL)

	clients := make([]*client.Client, 0, len(users))
	for _, name := range users {
		c := client.New(*baseURL)
		if err := c.RegisterAndLogin(name, *password); err != nil {
			log.Fatalf("sign in %s: %v", name, err)
		}
		log.Infof("signed in %s", name)
		clients = append(clients, c)
	}

	for _, l := range labels {
		if _, err := clients[0].CreateLabel(model.KindTopic, l); err != nil {
			log.Warnf("create label %s: %v", l, err)
		}
	}

	var responseIDs []string
	for _, t := range topics {
		author := rand.IntN(len(clients))
		if _, err := clients[author].CreateTopic(t.title, t.description); err != nil {
			log.Warnf("create topic %q: %v", t.title, err)
			continue
		}
		log.Infof("topic %q by %s", t.title, users[author])

		if err := clients[author].AddLabel(labels[rand.IntN(len(labels))], model.KindTopic, t.title); err != nil {
			log.Warnf("label %q: %v", t.title, err)
		}

		for i, c := range clients {
			if _, err := c.TakeSide(t.title, model.Degrees[rand.IntN(len(model.Degrees))]); err != nil {
				log.Warnf("side of %s on %q: %v", users[i], t.title, err)
			}
			if rand.Float32() < 0.4 {
				continue
			}
			take := takes[rand.IntN(len(takes))]
			resp, err := c.RespondToTopic(t.title, take.title, take.content)
			if err != nil {
				log.Warnf("respond: %v", err)
				continue
			}
			responseIDs = append(responseIDs, resp.ID)

			if rand.Float32() < 0.3 {
				replier := rand.IntN(len(clients))
				reply := takes[rand.IntN(len(takes))]
				if _, err := clients[replier].RespondToResponse(resp.ID, reply.title, reply.content); err != nil {
					log.Warnf("reply: %v", err)
				}
			}
		}
	}

	votes := 0
	for _, c := range clients {
		for _, id := range responseIDs {
			switch r := rand.Float32(); {
			case r < 0.5:
				err = c.Upvote(id)
			case r < 0.7:
				err = c.Downvote(id)
			default:
				continue
			}
			if err == nil {
				votes++
			}
		}
	}
	log.Infof("cast %d votes", votes)

	for i := 1; i < len(clients); i++ {
		if err := clients[0].SendFriendRequest(users[i]); err != nil {
			log.Warnf("friend request to %s: %v", users[i], err)
			continue
		}
		if i%2 == 1 {
			if err := clients[i].AcceptFriendRequest(users[0]); err != nil {
				log.Warnf("accept from %s: %v", users[0], err)
			}
		}
	}

	fmt.Println("\n=== Seed Complete ===")
	fmt.Printf("Users:     %d\n", len(users))
	fmt.Printf("Topics:    %d\n", len(topics))
	fmt.Printf("Responses: %d\n", len(responseIDs))
	fmt.Println("\nView at:", *baseURL)
}
