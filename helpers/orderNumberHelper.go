package helpers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"filter-delivery-backend/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var orderNumberCollection *mongo.Collection = database.OpenCollection(database.Client, "order")

const allocatorMaxRetries = 5

// FormatOrderNumber renders one order number, e.g. A-2024-0001.
func FormatOrderNumber(year int, seq int) string {
	return fmt.Sprintf("A-%d-%04d", year, seq)
}

// ParseSequence extracts the numeric sequence from an order number.
// Returns 0 for anything that does not match A-<year>-<seq>.
func ParseSequence(orderNumber string) int {
	parts := strings.Split(orderNumber, "-")
	if len(parts) != 3 {
		return 0
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}
	return seq
}

// ProposeSequences returns count consecutive sequences starting after last.
func ProposeSequences(last int, count int) []int {
	seqs := make([]int, 0, count)
	for i := 1; i <= count; i++ {
		seqs = append(seqs, last+i)
	}
	return seqs
}

// NextStartAfterCollisions picks the new scan start: the highest colliding
// sequence, so the next proposal begins past every number already taken.
func NextStartAfterCollisions(last int, colliding []string) int {
	next := last
	for _, number := range colliding {
		if seq := ParseSequence(number); seq > next {
			next = seq
		}
	}
	return next
}

// numberStore is the storage surface the allocator scans.
type numberStore interface {
	MaxSequenceForYear(ctx context.Context, year int) (int, error)
	ExistingOrderNumbers(ctx context.Context, numbers []string) ([]string, error)
}

// AllocateOrderNumbers returns count order numbers for the given year that
// exist neither in storage nor in the returned batch itself. The max-scan
// plus existence check is not atomic: two concurrent callers can propose the
// same numbers and only the unique index on order_number decides the loser.
// Exhausting the retries fails the whole allocation, no partial batch.
func AllocateOrderNumbers(ctx context.Context, year int, count int) ([]string, error) {
	return allocateOrderNumbers(ctx, mongoNumberStore{collection: orderNumberCollection}, year, count)
}

func allocateOrderNumbers(ctx context.Context, store numberStore, year int, count int) ([]string, error) {
	if count < 1 {
		return nil, fmt.Errorf("order number count must be positive, got %d", count)
	}

	last, err := store.MaxSequenceForYear(ctx, year)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < allocatorMaxRetries; attempt++ {
		proposed := ProposeSequences(last, count)
		numbers := make([]string, 0, count)
		for _, seq := range proposed {
			numbers = append(numbers, FormatOrderNumber(year, seq))
		}

		colliding, err := store.ExistingOrderNumbers(ctx, numbers)
		if err != nil {
			return nil, err
		}
		if len(colliding) == 0 {
			return numbers, nil
		}
		last = NextStartAfterCollisions(last, colliding)
	}
	return nil, fmt.Errorf("could not allocate %d order numbers for %d after %d attempts", count, year, allocatorMaxRetries)
}

type mongoNumberStore struct {
	collection *mongo.Collection
}

// MaxSequenceForYear scans for the highest existing sequence of a year.
// A lexicographic sort is enough because all sequences share the 4-digit
// zero padding.
func (s mongoNumberStore) MaxSequenceForYear(ctx context.Context, year int) (int, error) {
	prefix := fmt.Sprintf("A-%d-", year)
	filter := bson.M{"order_number": bson.M{"$regex": "^" + prefix}}
	opts := options.FindOne().SetSort(bson.D{{Key: "order_number", Value: -1}})

	var doc struct {
		Order_number string `bson:"order_number"`
	}
	err := s.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ParseSequence(doc.Order_number), nil
}

func (s mongoNumberStore) ExistingOrderNumbers(ctx context.Context, numbers []string) ([]string, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"order_number": bson.M{"$in": numbers}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var existing []string
	for cursor.Next(ctx) {
		var doc struct {
			Order_number string `bson:"order_number"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		existing = append(existing, doc.Order_number)
	}
	return existing, cursor.Err()
}
