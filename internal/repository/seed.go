package repository

import (
	"context"
	"fmt"

	"github.com/sakif/jokebox/internal/model"
)

// SeedJokes is the built-in joke list every store starts with.
// Appending them in order to an empty store yields ids 1 through 15.
var SeedJokes = []model.Joke{
	{Text: "Why don't scientists trust atoms? Because they make up everything!", Category: "Science"},
	{Text: "What did one ocean say to the other ocean? Nothing, they just waved!", Category: "Puns"},
	{Text: "Why did the scarecrow win an award? He was outstanding in his field!", Category: "Puns"},
	{Text: "I'm reading a book about anti-gravity. It's impossible to put down!", Category: "Books"},
	{Text: "Did you hear about the mathematician who's afraid of negative numbers? He'll stop at nothing to avoid them!", Category: "Math"},
	{Text: "Why don't skeletons fight each other? They don't have the guts!", Category: "Halloween"},
	{Text: "What do you call a fake noodle? An impasta!", Category: "Food"},
	{Text: "How does a penguin build its house? Igloos it together!", Category: "Animals"},
	{Text: "Why did the bicycle fall over? Because it was two tired!", Category: "Puns"},
	{Text: "What do you call a bear with no teeth? A gummy bear!", Category: "Animals"},
	{Text: "Why did the coffee file a police report? It got mugged!", Category: "Food"},
	{Text: "What do you call a factory that makes good products? A satisfactory!", Category: "Puns"},
	{Text: "Why don't eggs tell jokes? They'd crack each other up!", Category: "Food"},
	{Text: "What do you call a fish wearing a crown? King mackerel!", Category: "Animals"},
	{Text: "Why couldn't the leopard play hide and seek? Because he was always spotted!", Category: "Animals"},
}

// Seed appends SeedJokes to repo, but only when repo is empty.
// Calling it twice on the same store is a no-op the second time.
func Seed(ctx context.Context, repo JokeRepository) error {
	n, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed: counting jokes: %w", err)
	}
	if n > 0 {
		return nil
	}

	for _, j := range SeedJokes {
		// copy, so the package-level slice keeps zero ids
		joke := j
		if err := repo.Append(ctx, &joke); err != nil {
			return fmt.Errorf("seed: appending joke: %w", err)
		}
	}
	return nil
}
