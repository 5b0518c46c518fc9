package repository

import (
	"context"
	"testing"

	"github.com/Blacksatth/Pagina-Web/internal/domain"
	"github.com/Blacksatth/Pagina-Web/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestMongoDBProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("fetch catalog drops malformed documents", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "storefront.products", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "101"}, {Key: "name", Value: "Hat"}, {Key: "price", Value: 12.5}, {Key: "image", Value: "a.jpg"}},
			bson.D{{Key: "_id", Value: "102"}, {Key: "name", Value: "Shirt"}},
			bson.D{{Key: "_id", Value: int32(103)}, {Key: "name", Value: "Cap"}, {Key: "price", Value: int32(5)}, {Key: "image", Value: bson.A{"c.jpg", "d.jpg"}}},
		))

		repo := CreateNewMongoDBRepository(mt.DB)
		catalog, err := repo.FetchCatalog(context.Background())

		require.NoError(mt, err)
		require.Len(mt, catalog, 2)
		assert.Equal(mt, "101", catalog[0].ID)
		assert.Equal(mt, "103", catalog[1].ID)
		assert.Equal(mt, []string{"d.jpg"}, catalog[1].ExtraImages)
	})

	mt.Run("add product takes the next sequential id", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{{Key: "_id", Value: "products"}, {Key: "lastId", Value: int64(1)}}}),
			mtest.CreateSuccessResponse(),
		)

		repo := CreateNewMongoDBRepository(mt.DB)
		id, err := repo.AddProduct(context.Background(), domain.Product{Name: "Hat", Price: 10, Image: "a.jpg"}, domain.ProductAssets{})

		require.NoError(mt, err)
		assert.Equal(mt, "101", id)
	})

	mt.Run("update unknown product", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		repo := CreateNewMongoDBRepository(mt.DB)
		err := repo.UpdateProduct(context.Background(), domain.Product{ID: "999", Name: "Hat"})

		assert.ErrorIs(mt, err, errs.ErrNotFound)
	})
}

func TestDocumentPublicIDs(t *testing.T) {
	doc := bson.M{
		"publicId": "main",
		"extraImages": bson.A{
			bson.M{"url": "b.jpg", "publicId": "extra-1"},
			bson.D{{Key: "url", Value: "c.jpg"}, {Key: "publicId", Value: "extra-2"}},
			"legacy.jpg",
		},
	}

	assert.Equal(t, []string{"main", "extra-1", "extra-2"}, documentPublicIDs(doc))
	assert.Equal(t, []string{}, documentPublicIDs(bson.M{}))
}
