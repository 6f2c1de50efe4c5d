package db

import (
	"context"
	"fmt"
	"log"
	"strings"

	"boomerometro-bot/boomer"
)

// defaultPhrases are installed as global triggers on every start.
var defaultPhrases = []string{
	"non ci sono più le mezze stagioni",
	"si stava meglio quando si stava peggio",
	"ai miei tempi",
	"bei tempi",
	"piove, governo ladro",
	"i giovani d'oggi",
	"una volta era tutto diverso",
	"ai miei tempi queste cose non succedevano",
}

func (s *Store) InitTables(ctx context.Context) error {
	for _, table := range s.dialect.tables {
		if _, err := s.db.ExecContext(ctx, table); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	log.Println("[db] tables ready")

	return s.seedDefaultTriggers(ctx)
}

// seedDefaultTriggers inserts the default global triggers, leaving existing rows alone.
func (s *Store) seedDefaultTriggers(ctx context.Context) error {
	for _, phrase := range defaultPhrases {
		phrase = strings.ToLower(phrase)
		if _, err := s.db.ExecContext(ctx, s.dialect.seedTrigger, boomer.Normalize(phrase), globalGroupID, phrase); err != nil {
			return fmt.Errorf("seed trigger %q: %w", phrase, err)
		}
	}
	return nil
}
