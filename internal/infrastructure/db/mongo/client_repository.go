package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/credilinea/intake-system/internal/core/domain"
)

const clientsCollection = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(clientsCollection)}
}

type mongoClient struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Cedula           string             `bson:"cedula"`
	Name             string             `bson:"name"`
	BirthDate        string             `bson:"birth_date"`
	Address          string             `bson:"address"`
	City             string             `bson:"city"`
	Neighborhood     string             `bson:"neighborhood"`
	WorkAddress      string             `bson:"work_address"`
	WorkNeighborhood string             `bson:"work_neighborhood"`
	WorkCity         string             `bson:"work_city"`
	Workplace        string             `bson:"workplace"`
	WorkPhone        string             `bson:"work_phone"`
	CreditAmount     float64            `bson:"credit_amount"`
	ReturnAmount     float64            `bson:"return_amount"`
	CompanyProfit    float64            `bson:"company_profit"`
	AgentProfit      float64            `bson:"agent_profit"`
	CreatedAt        int64              `bson:"created_at"`
	CreatedBy        string             `bson:"created_by"`
}

// Create inserts a new client document. The unique index on cedula turns a
// concurrent duplicate submission into ErrClientExists.
func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainClient(c)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}

	created := *c
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ClientRepository) FindByCedula(ctx context.Context, cedula string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClient
	if err := r.col.FindOne(ctx, bson.M{"cedula": cedula}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return mc.toDomain(), nil
}

// FindAll returns every client record ordered by creation time, newest first.
func (r *ClientRepository) FindAll(ctx context.Context) ([]domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find clients: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoClient
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]domain.Client, 0, len(docs))
	for _, mc := range docs {
		clients = append(clients, *mc.toDomain())
	}
	return clients, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClientNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func fromDomainClient(c *domain.Client) mongoClient {
	return mongoClient{
		Cedula:           c.Cedula,
		Name:             c.Name,
		BirthDate:        c.BirthDate,
		Address:          c.Address,
		City:             c.City,
		Neighborhood:     c.Neighborhood,
		WorkAddress:      c.WorkAddress,
		WorkNeighborhood: c.WorkNeighborhood,
		WorkCity:         c.WorkCity,
		Workplace:        c.Workplace,
		WorkPhone:        c.WorkPhone,
		CreditAmount:     c.CreditAmount,
		ReturnAmount:     c.ReturnAmount,
		CompanyProfit:    c.CompanyProfit,
		AgentProfit:      c.AgentProfit,
		CreatedAt:        c.CreatedAt.Unix(),
		CreatedBy:        c.CreatedBy,
	}
}

func (mc *mongoClient) toDomain() *domain.Client {
	return &domain.Client{
		ID:               mc.ID.Hex(),
		Cedula:           mc.Cedula,
		Name:             mc.Name,
		BirthDate:        mc.BirthDate,
		Address:          mc.Address,
		City:             mc.City,
		Neighborhood:     mc.Neighborhood,
		WorkAddress:      mc.WorkAddress,
		WorkNeighborhood: mc.WorkNeighborhood,
		WorkCity:         mc.WorkCity,
		Workplace:        mc.Workplace,
		WorkPhone:        mc.WorkPhone,
		CreditAmount:     mc.CreditAmount,
		ReturnAmount:     mc.ReturnAmount,
		CompanyProfit:    mc.CompanyProfit,
		AgentProfit:      mc.AgentProfit,
		CreatedAt:        unixToTime(mc.CreatedAt),
		CreatedBy:        mc.CreatedBy,
	}
}
