package redis_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	redis_adapter "eatify/internal/adapters/out/redis"
	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/core/domain/model/verification"
	"eatify/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type CodeStoreIntegrationTestSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	store     *redis_adapter.CodeStore
}

func (suite *CodeStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	suite.Require().NoError(err)
	suite.container = container

	uri, err := container.ConnectionString(ctx)
	suite.Require().NoError(err)

	opts, err := redis.ParseURL(uri)
	suite.Require().NoError(err)
	suite.client = redis.NewClient(opts)
	suite.Require().NoError(suite.client.Ping(ctx).Err())
}

func (suite *CodeStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
	suite.store = redis_adapter.NewCodeStore(suite.client, time.Minute)
}

func (suite *CodeStoreIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CodeStoreIntegrationTestSuite) put(id kernel.OrderID, digits string) {
	code, err := verification.NewCode(id, digits, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.Put(context.Background(), code))
}

func (suite *CodeStoreIntegrationTestSuite) TestConsume_MatchDeletesCode() {
	ctx := context.Background()
	suite.put("O1", "4821")

	suite.Require().NoError(suite.store.Consume(ctx, "O1", "4821", now))

	err := suite.store.Consume(ctx, "O1", "4821", now)
	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
}

func (suite *CodeStoreIntegrationTestSuite) TestConsume_MismatchKeepsCode() {
	ctx := context.Background()
	suite.put("O1", "4821")

	err := suite.store.Consume(ctx, "O1", "1111", now)
	suite.Require().ErrorIs(err, errs.ErrCodeMismatch)

	suite.Require().NoError(suite.store.Consume(ctx, "O1", "4821", now))
}

func (suite *CodeStoreIntegrationTestSuite) TestConsume_ExpiredCodeIsGone() {
	ctx := context.Background()
	suite.put("O1", "4821")

	err := suite.store.Consume(ctx, "O1", "4821", now.Add(time.Minute))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	exists, err := suite.client.Exists(ctx, "verification_code:O1").Result()
	suite.Require().NoError(err)
	suite.Zero(exists)
}

func (suite *CodeStoreIntegrationTestSuite) TestPut_ReplacesPreviousCode() {
	ctx := context.Background()
	suite.put("O1", "4821")
	suite.put("O1", "9034")

	suite.Require().ErrorIs(suite.store.Consume(ctx, "O1", "4821", now), errs.ErrCodeMismatch)
	suite.Require().NoError(suite.store.Consume(ctx, "O1", "9034", now))
}

func (suite *CodeStoreIntegrationTestSuite) TestPut_SetsKeyTTL() {
	suite.put("O1", "4821")

	ttl, err := suite.client.PTTL(context.Background(), "verification_code:O1").Result()
	suite.Require().NoError(err)
	suite.Positive(ttl)
	suite.LessOrEqual(ttl, time.Minute)
}

func (suite *CodeStoreIntegrationTestSuite) TestConsume_ConcurrentConfirmsHaveOneWinner() {
	ctx := context.Background()
	suite.put("O1", "4821")

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if suite.store.Consume(ctx, "O1", "4821", now) == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	suite.Equal(int32(1), winners.Load())
}

func (suite *CodeStoreIntegrationTestSuite) TestDelete_WithdrawsCode() {
	ctx := context.Background()
	suite.put("O1", "4821")

	suite.Require().NoError(suite.store.Delete(ctx, "O1"))
	suite.Require().ErrorIs(suite.store.Consume(ctx, "O1", "4821", now), errs.ErrObjectNotFound)
}

func TestCodeStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CodeStoreIntegrationTestSuite))
}
