package pokedex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pokeshiri/server/internal/kana"
)

// DefaultGraphQLEndpoint is the public PokeAPI GraphQL endpoint.
const DefaultGraphQLEndpoint = "https://beta.pokeapi.co/graphql/v1beta"

// jaHrkt is the PokeAPI language id for Japanese written in kana.
const jaHrkt = 1

const speciesQuery = `query species($lang: Int!) {
  pokemon_v2_pokemonspecies(order_by: {id: asc}) {
    id
    generation_id
    pokemon_v2_pokemonspeciesnames(where: {language_id: {_eq: $lang}}) {
      name
      genus
    }
    pokemon_v2_pokemons(where: {is_default: {_eq: true}}) {
      pokemon_v2_pokemontypes(order_by: {slot: asc}) {
        type_id
      }
    }
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type speciesResponse struct {
	Data struct {
		Species []struct {
			ID           int `json:"id"`
			GenerationID int `json:"generation_id"`
			Names        []struct {
				Name  string `json:"name"`
				Genus string `json:"genus"`
			} `json:"pokemon_v2_pokemonspeciesnames"`
			Pokemons []struct {
				Types []struct {
					TypeID int `json:"type_id"`
				} `json:"pokemon_v2_pokemontypes"`
			} `json:"pokemon_v2_pokemons"`
		} `json:"pokemon_v2_pokemonspecies"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// GraphQL fetches species data from a GraphQL endpoint.
type GraphQL struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewGraphQL(endpoint string, timeout time.Duration, logger *slog.Logger) *GraphQL {
	if endpoint == "" {
		endpoint = DefaultGraphQLEndpoint
	}
	return &GraphQL{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (g *GraphQL) Load(ctx context.Context) (*Database, error) {
	records, err := g.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return build(g.logger, "graphql", records), nil
}

func (g *GraphQL) fetch(ctx context.Context) ([]Pokemon, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     speciesQuery,
		Variables: map[string]any{"lang": jaHrkt},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching species: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetching species: status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var sr speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decoding species: %w", err)
	}
	if len(sr.Errors) > 0 {
		return nil, fmt.Errorf("graphql: %s", sr.Errors[0].Message)
	}

	return reshape(sr), nil
}

// reshape converts the species payload into records. Species without a kana
// name or types are dropped, as are names ending in ン.
func reshape(sr speciesResponse) []Pokemon {
	records := make([]Pokemon, 0, len(sr.Data.Species))
	for _, s := range sr.Data.Species {
		if len(s.Names) == 0 || len(s.Pokemons) == 0 {
			continue
		}
		name := kana.Normalize(s.Names[0].Name)
		if name == "" || kana.EndsWithN(name) {
			continue
		}
		p := Pokemon{
			Name:       name,
			Genus:      correctGenus(s.ID, s.Names[0].Genus),
			Generation: s.GenerationID,
			DexNumber:  s.ID,
		}
		for _, t := range s.Pokemons[0].Types {
			p.Types = append(p.Types, t.TypeID)
		}
		if err := p.Validate(); err != nil {
			continue
		}
		records = append(records, p)
	}
	return records
}
