package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productCollection  = "products"
	metadataCollection = "metadata"
	productCounterID   = "products"
	// first generated id is firstProductID + 1
	firstProductID = 100
)

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) FetchCatalog(ctx context.Context) (domain.Catalog, error) {
	cursor, err := r.db.Collection(productCollection).Find(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "FetchCatalog").Msg("")
		return nil, fmt.Errorf("%w: %v", errs.ErrFetch, err)
	}

	records := make([]ProductRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, ProductRecord(doc))
	}

	return NormalizeRecords(ctx, records), nil
}

func (r *MongoDBProductRepositoryImpl) nextProductID(ctx context.Context) (string, error) {
	filter := bson.D{{Key: "_id", Value: productCounterID}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "lastId", Value: 1}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var counter struct {
		LastID int64 `bson:"lastId"`
	}

	err := r.db.Collection(metadataCollection).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(firstProductID+counter.LastID, 10), nil
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product, assets domain.ProductAssets) (id string, err error) {
	id, err = r.nextProductID(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return
	}

	extraImages := bson.A{}
	for _, img := range assets.ExtraImages {
		extraImages = append(extraImages, img)
	}

	doc := bson.M{
		"_id":         id,
		"name":        data.Name,
		"price":       data.Price,
		"category":    data.Category,
		"description": data.Description,
		"image":       data.Image,
		"publicId":    assets.ImagePublicID,
		"extraImages": extraImages,
		"stock":       data.Stock,
		"onSale":      data.OnSale,
		"salePrice":   data.SalePrice,
	}

	_, err = r.db.Collection(productCollection).InsertOne(ctx, doc)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return "", err
	}

	return id, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "price", Value: data.Price},
		{Key: "category", Value: data.Category},
		{Key: "description", Value: data.Description},
		{Key: "image", Value: data.Image},
		{Key: "stock", Value: data.Stock},
		{Key: "onSale", Value: data.OnSale},
		{Key: "salePrice", Value: data.SalePrice},
	}}}

	result, err := r.db.Collection(productCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (publicIDs []string, err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	var doc bson.M
	err = r.db.Collection(productCollection).FindOneAndDelete(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return nil, err
	}

	return documentPublicIDs(doc), nil
}

func documentPublicIDs(doc bson.M) []string {
	publicIDs := []string{}
	if id, ok := doc["publicId"].(string); ok && id != "" {
		publicIDs = append(publicIDs, id)
	}

	extras, ok := doc["extraImages"].(bson.A)
	if !ok {
		return publicIDs
	}

	for _, extra := range extras {
		var id interface{}
		switch img := extra.(type) {
		case bson.M:
			id = img["publicId"]
		case bson.D:
			id = img.Map()["publicId"]
		}

		if s, ok := id.(string); ok && s != "" {
			publicIDs = append(publicIDs, s)
		}
	}

	return publicIDs
}
