package auditrepo_test

import (
	"context"
	"testing"
	"time"

	"textile/internal/adapters/out/postgres/auditrepo"
	"textile/internal/adapters/out/postgres/pgtest"
	"textile/internal/core/domain/model/audit"

	"github.com/stretchr/testify/suite"
)

type AuditLogIntegrationTestSuite struct {
	suite.Suite
	pg  *pgtest.Database
	log *auditrepo.GormAuditLog
}

func (suite *AuditLogIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *AuditLogIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.log = auditrepo.NewGormAuditLog(suite.pg.DB)
}

func (suite *AuditLogIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *AuditLogIntegrationTestSuite) TestAppend_StoresValuesAndNulls() {
	ctx := context.Background()
	now := time.Now()

	update, err := audit.NewEntry(audit.Record{
		Entity:   audit.EntityOrder,
		EntityID: "11",
		Action:   audit.ActionPriceUpdate,
		Field:    "price_sale",
		Before:   "25.00",
		After:    "30.00",
		Actor:    "ana",
	}, now)
	suite.Require().NoError(err)
	create, err := audit.NewEntry(audit.Record{
		Entity:   audit.EntityClient,
		EntityID: "3",
		Action:   audit.ActionCreate,
		After:    map[string]string{"name": "Hotel Mar Azul"},
		Actor:    "ana",
	}, now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.log.Append(ctx, update))
	suite.Require().NoError(suite.log.Append(ctx, create))

	var rows []auditrepo.EntryDTO
	suite.Require().NoError(suite.pg.DB.Order("id").Find(&rows).Error)
	suite.Require().Len(rows, 2)

	suite.Less(rows[0].ID, rows[1].ID)
	suite.Require().NotNil(rows[0].Field)
	suite.Equal("price_sale", *rows[0].Field)
	suite.Require().NotNil(rows[0].Before)
	suite.JSONEq(`"25.00"`, string(*rows[0].Before))

	suite.Nil(rows[1].Field)
	suite.Nil(rows[1].Before)
	suite.Require().NotNil(rows[1].After)
	suite.JSONEq(`{"name":"Hotel Mar Azul"}`, string(*rows[1].After))
}

func TestAuditLogIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(AuditLogIntegrationTestSuite))
}
