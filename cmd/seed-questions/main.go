package main

import (
	"context"
	"fmt"

	"github.com/Ayush-Repositories/decyber-v2/internal/config"
	"github.com/Ayush-Repositories/decyber-v2/internal/database"
	"github.com/Ayush-Repositories/decyber-v2/internal/logger"
)

type seedQuestion struct {
	ID          string
	StateCode   string
	StateName   string
	Title       string
	Image       string
	Answer      string
	Hint        string
	MaxScore    int
	RoundNumber int
}

// Answer specs use the matcher grammar: "|" separates accepted variants and a
// "!reject:" prefix inverts the list (any listed phrase loses, anything else
// wins).
var seedQuestions = []seedQuestion{
	{
		ID:        "q-01",
		StateCode: "IN-AP",
		StateName: "Andhra Pradesh",
		Title: "My pet octopus went on a roadtrip to Finland but lost his phone in a river. " +
			"Magically, just 1100m downstream, he found it again. " +
			"What's the name of the town where all this happened?",
		Answer:   "Nokia",
		MaxScore: 150,
	},
	{
		ID:        "q-02",
		StateCode: "IN-AR",
		StateName: "Arunachal Pradesh",
		Title: "Composed by Bhimsen Joshi, arranged by Louis Banks, lyrics by Piyush Pandey. " +
			"First telecast on Independence Day 1988 on Doordarshan. " +
			"The lyrics roughly translate to \"as our notes mingle together\". Name the song.",
		Answer:   "Mile Sur mera tumhara|Mile Sur Mera Tumhara|Mile sur|Mile Sur",
		Hint:     "Most famous version sung by Lata Mangeshkar",
		MaxScore: 120,
	},
	{
		ID:        "q-03",
		StateCode: "IN-KL",
		StateName: "Kerala",
		Title: "Monsoon clouds gathered over the Malabar Coast as a flight from the desert " +
			"returned home to a tabletop runway in 2020. Name the city where this tragedy occurred.",
		Answer:   "Kozhikode|Calicut|Kozhikkode|Kozhikodu",
		Hint:     "Aug 2020 plane crash",
		MaxScore: 140,
	},
	{
		ID:        "q-04",
		StateCode: "IN-SK",
		StateName: "Sikkim",
		Title: "A certain number can be written as the sum of two positive cubes in two " +
			"distinct ways. Identify the least possible of these numbers.",
		Answer:   "1729",
		Hint:     "Hardy's taxi number",
		MaxScore: 100,
	},
	{
		ID:        "q-05",
		StateCode: "IN-GA",
		StateName: "Goa",
		Title: "Wtf is \"Tangy Liquid Sphere Bites\"? \"Stuffed semolina shots\"? " +
			"\"Flavoured H2O bombs\"? Wrong answers only!",
		Answer: "!reject:golgappe|panipuri|puchka|pani puri|gol gappe|gol gappa|golgappa" +
			"|phuchka|puchkas|paani puri|pani-puri|gupchup|gup chup|pani ke batashe|batashe|patashi",
		MaxScore: 50,
	},
	{
		ID:        "q-06",
		StateCode: "IN-AN",
		StateName: "Andaman and Nicobar Islands",
		Title: "\"I am the shadow of the Emancipator. We were born on the exact same day, " +
			"of the exact same year, on opposite sides of the Atlantic. He broke the chains " +
			"of men; I broke the chains of divine origin. Who am I?\"",
		Answer:   "Charles Darwin|Darwin|Charles Robert Darwin",
		MaxScore: 200,
	},
	{
		ID:        "q-07",
		StateCode: "IN-AS",
		StateName: "Assam",
		Title: "To keep selling its beverages in the USSR, this corporation accepted a fleet " +
			"of decommissioned Soviet naval vessels, submarines included, as payment. " +
			"Which multinational company?",
		Answer:   "PepsiCo|Pepsi|Pepsi Co|Pepsi-Co|PepsiCo Inc|PepsiCo, Inc|PepsiCo Inc.",
		MaxScore: 130,
	},
	{
		ID:        "q-08",
		StateCode: "IN-HP",
		StateName: "Himachal Pradesh",
		Title: "What is the current time at the North Pole? " +
			"(Fun fact: whatever time you write, it's both right and wrong at the same time)",
		Answer:   "Anytime|Any time|Any|All times|Every time|Every timezone|All timezones",
		MaxScore: 130,
	},
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Seed ──────────────────────────────────────────────────────────
	// Upsert so reseeding refreshes content but keeps solve state intact
	// for rows that were already played.
	for _, q := range seedQuestions {
		_, err := pool.Exec(ctx,
			`INSERT INTO questions (id, state_code, state_name, title, image, answer, hint, max_score, current_score, solved, solved_by, round_number)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8, false, '{}', $9)
			 ON CONFLICT (id) DO UPDATE SET
			   state_code = EXCLUDED.state_code,
			   state_name = EXCLUDED.state_name,
			   title = EXCLUDED.title,
			   image = EXCLUDED.image,
			   answer = EXCLUDED.answer,
			   hint = EXCLUDED.hint,
			   max_score = EXCLUDED.max_score,
			   round_number = EXCLUDED.round_number`,
			q.ID, q.StateCode, q.StateName, q.Title, q.Image, q.Answer, q.Hint, q.MaxScore, q.RoundNumber,
		)
		if err != nil {
			log.Fatal().Err(err).Str("question_id", q.ID).Msg("Failed to seed question")
		}
	}

	fmt.Printf("Seeded %d questions successfully.\n", len(seedQuestions))
}
