package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func DBinstance() *mongo.Client {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	MongoDb := os.Getenv("MONGODB_URL")
	if MongoDb == "" {
		MongoDb = "mongodb://localhost:27017"
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(MongoDb))
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("connected to mongodb")
	return client
}

var Client *mongo.Client = DBinstance()

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		databaseName = "filterdelivery"
	}
	return client.Database(databaseName).Collection(collectionName)
}

// EnsureIndexes creates the unique indexes the duplicate checks rely on.
// The order number index is the only thing standing between two concurrent
// allocators and a stored duplicate.
func EnsureIndexes(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	_, err := OpenCollection(client, "order").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "order_number", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = OpenCollection(client, "customer").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "customer_number", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = OpenCollection(client, "driver").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "driver_number", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = OpenCollection(client, "user").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}
	_, err = OpenCollection(client, "item").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "filter_type", Value: 1},
			{Key: "length", Value: 1},
			{Key: "width", Value: 1},
			{Key: "depth", Value: 1},
			{Key: "unit_of_measure", Value: 1},
		},
		Options: unique,
	})
	return err
}
