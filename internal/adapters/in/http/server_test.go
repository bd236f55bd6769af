package http_test

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	httpin "textile/internal/adapters/in/http"
	"textile/internal/adapters/out/postgres/pgerr"
	"textile/internal/core/application/usecases/commands"
	"textile/internal/core/application/usecases/queries"
	"textile/internal/core/domain/model/audit"
	"textile/internal/core/domain/model/catalog"
	"textile/internal/core/domain/model/finance"
	"textile/internal/core/domain/model/kernel"
	"textile/internal/core/domain/model/order"
	"textile/internal/generated/servers"
	"textile/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

type ServerTestSuite struct {
	suite.Suite

	createClient   *MockCreateClientHandler
	createOrder    *MockCreateOrderHandler
	editOrder      *MockEditOrderHandler
	deleteOrder    *MockDeleteOrderHandler
	transition     *MockTransitionOrderHandler
	exportDocument *MockExportOrderDocumentHandler
	createBatch    *MockCreatePaymentBatchHandler
	updateCatalog  *MockUpdateCatalogHandler
	uploadPhoto    *MockUploadPhotoHandler
	getCatalog     *MockGetCatalogHandler
	listOrders     *MockListOrdersHandler
	getOrder       *MockGetOrderHandler
	listUnsettled  *MockListUnsettledEntriesHandler
	listAudit      *MockListAuditEntriesHandler
	verifyLedger   *MockVerifyLedgerHandler
	statistics     *MockGetStatisticsHandler
	cleanOrphans   *MockCleanOrphanedObjectsHandler
	router         *echo.Echo
	now            time.Time
	deliveredOrder *order.Order
	defaultCatalog *catalog.Catalog
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.createClient = &MockCreateClientHandler{}
	s.createOrder = &MockCreateOrderHandler{}
	s.editOrder = &MockEditOrderHandler{}
	s.deleteOrder = &MockDeleteOrderHandler{}
	s.transition = &MockTransitionOrderHandler{}
	s.exportDocument = &MockExportOrderDocumentHandler{}
	s.createBatch = &MockCreatePaymentBatchHandler{}
	s.updateCatalog = &MockUpdateCatalogHandler{}
	s.uploadPhoto = &MockUploadPhotoHandler{}
	s.getCatalog = &MockGetCatalogHandler{}
	s.listOrders = &MockListOrdersHandler{}
	s.getOrder = &MockGetOrderHandler{}
	s.listUnsettled = &MockListUnsettledEntriesHandler{}
	s.listAudit = &MockListAuditEntriesHandler{}
	s.verifyLedger = &MockVerifyLedgerHandler{}
	s.statistics = &MockGetStatisticsHandler{}
	s.cleanOrphans = &MockCleanOrphanedObjectsHandler{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(
		httpin.Commands{
			CreateClient:        s.createClient,
			CreateOrder:         s.createOrder,
			EditOrder:           s.editOrder,
			DeleteOrder:         s.deleteOrder,
			TransitionOrder:     s.transition,
			ExportOrderDocument: s.exportDocument,
			CreatePaymentBatch:  s.createBatch,
			UpdateCatalog:       s.updateCatalog,
			UploadPhoto:         s.uploadPhoto,

			CleanOrphanedObjects: s.cleanOrphans,
		},
		httpin.Queries{
			GetCatalog:           s.getCatalog,
			ListOrders:           s.listOrders,
			GetOrder:             s.getOrder,
			ListUnsettledEntries: s.listUnsettled,
			ListAuditEntries:     s.listAudit,
			VerifyLedger:         s.verifyLedger,
			GetStatistics:        s.statistics,
		},
		logger,
	)

	router, err := httpin.NewRouter(server, httpin.RouterConfig{JWTSecret: testSecret, Logger: logger})
	s.Require().NoError(err)
	s.router = router

	s.now = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	o, err := order.NewOrder(
		kernel.MustNewID(5), kernel.MustNewID(7),
		order.Selection{Category: "Bed sheet", Type: "Queen", Product: "4 pieces"},
		kernel.MustMoney("10.00"), kernel.MustMoney("25.00"),
		order.Details{Notes: order.StructuredNotes{Fabric: "Percale"}},
		s.now,
	)
	s.Require().NoError(err)
	s.deliveredOrder = o
	s.defaultCatalog = catalog.Default()
}

func (s *ServerTestSuite) TearDownTest() {
	for _, m := range []interface{ AssertExpectations(mock.TestingT) bool }{
		s.createClient, s.createOrder, s.editOrder, s.deleteOrder, s.transition,
		s.exportDocument, s.createBatch, s.updateCatalog, s.uploadPhoto, s.getCatalog,
		s.listOrders, s.getOrder, s.listUnsettled, s.listAudit, s.verifyLedger,
		s.statistics, s.cleanOrphans,
	} {
		m.AssertExpectations(s.T())
	}
}

func (s *ServerTestSuite) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func bearer(subject, secret string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(secret))
	if err != nil {
		panic(err)
	}
	return "Bearer " + token
}

func (s *ServerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/api/v1/health", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Healthy")
}

func (s *ServerTestSuite) TestCreateClient() {
	s.createClient.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateClientCommand) bool {
		return cmd.Name() == "Hotel Miramar" && cmd.Contact().Phone == "555-0101"
	})).Return(kernel.MustNewID(3), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/clients", `{"name":"Hotel Miramar","phone":"555-0101"}`)

	s.Equal(http.StatusCreated, rec.Code)
	var created servers.Created
	s.decode(rec, &created)
	s.Equal(int64(3), created.Id)
}

func (s *ServerTestSuite) TestCreateOrder() {
	s.createOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.ClientID().Int64() == 7 &&
			cmd.Selection().Product == "4 pieces" &&
			cmd.PriceCost().String() == "10.00" &&
			cmd.PriceSale().String() == "25.00" &&
			cmd.Details().Notes.Fabric == "Percale" &&
			string(cmd.Details().Notes.Extra["pattern"]) == `"striped"` &&
			len(cmd.Details().Photos) == 1 &&
			cmd.Actor() == audit.DefaultActor
	})).Return(kernel.MustNewID(11), nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders", `{
		"client_id": 7,
		"category": "Bed sheet",
		"type": "Queen",
		"product": "4 pieces",
		"price_cost": "10.00",
		"price_sale": "25.00",
		"notes": {"fabric": "Percale", "pattern": "striped"},
		"photos": ["https://cdn.example.com/a.jpg"]
	}`)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var created servers.Created
	s.decode(rec, &created)
	s.Equal(int64(11), created.Id)
}

func (s *ServerTestSuite) TestCreateOrder_RejectedByContract() {
	for name, body := range map[string]string{
		"malformed price":  `{"client_id":7,"category":"a","type":"b","product":"c","price_cost":"ten","price_sale":"25"}`,
		"missing product":  `{"client_id":7,"category":"a","type":"b","price_cost":"10","price_sale":"25"}`,
		"oversized price":  `{"client_id":7,"category":"a","type":"b","product":"c","price_cost":"100000000000.00","price_sale":"25"}`,
		"negative measure": `{"client_id":7,"category":"a","type":"b","product":"c","price_cost":"1","price_sale":"2","notes":{"measurements":{"width":-1}}}`,
	} {
		s.Run(name, func() {
			rec := s.do(http.MethodPost, "/api/v1/orders", body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
	s.createOrder.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestCreateOrder_UnknownClient() {
	s.createOrder.On("Handle", mock.Anything, mock.Anything).
		Return(kernel.ID{}, errs.NewObjectNotFoundError("client", 7)).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders",
		`{"client_id":7,"category":"a","type":"b","product":"c","price_cost":"10","price_sale":"25"}`)

	s.Equal(http.StatusNotFound, rec.Code)
	var body servers.Error
	s.decode(rec, &body)
	s.Equal(http.StatusNotFound, body.Code)
	s.Contains(body.Message, "client")
}

func (s *ServerTestSuite) TestTransitionOrder_CompleteDeliveryWithRevision() {
	s.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
		revision, ok := cmd.PriceRevision()
		return cmd.OrderID().Int64() == 5 &&
			cmd.Trigger() == order.CompleteDelivery &&
			ok && revision.PriceCost == nil &&
			revision.PriceSale != nil && revision.PriceSale.String() == "30.00"
	})).Return(s.deliveredOrder, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/5/transitions",
		`{"trigger":"COMPLETE_DELIVERY","price_revision":{"price_sale":"30.00"}}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	var body servers.Order
	s.decode(rec, &body)
	s.Equal(int64(5), body.Id)
	s.Equal(1, body.Version)
	s.JSONEq(`{"fabric":"Percale"}`, string(body.Notes))
}

func (s *ServerTestSuite) TestTransitionOrder_ResendWithNonConformity() {
	s.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionOrderCommand) bool {
		report, ok := cmd.NonConformity()
		return ok && report.Kind == order.KindMeasurement && report.Count == 2 && cmd.Medium() == "EMAIL"
	})).Return(s.deliveredOrder, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/5/transitions", `{
		"trigger": "RESEND_AFTER_NONCONFORMITY",
		"medium": "EMAIL",
		"nonconformity": {"kind": "MEASUREMENT", "description": "2cm short", "count": 2}
	}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestTransitionOrder_ErrorMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"lock conflict", errs.NewConcurrencyConflictError("order", 5), http.StatusConflict},
		{
			"stale version",
			errs.NewConcurrencyConflictErrorWithCause("order", 5, errs.NewVersionIsInvalidError("version", errors.New("stale"))),
			http.StatusConflict,
		},
		{"missing order", errs.NewObjectNotFoundError("order", 5), http.StatusNotFound},
		{
			"not allowed",
			errs.NewValueIsInvalidErrorWithCause("transition", order.ErrTransitionIsNotAllowed),
			http.StatusUnprocessableEntity,
		},
		{
			"numeric overflow",
			pgerr.Translate(&pq.Error{Code: pgerr.NumericOutOfRange}, "update order", "order", 5),
			http.StatusUnprocessableEntity,
		},
		{"lost connection", errs.NewStorageError("get order", driver.ErrBadConn), http.StatusServiceUnavailable},
		{"storage failure", errs.NewStorageError("get order", errors.New("disk full")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.transition.On("Handle", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			rec := s.do(http.MethodPost, "/api/v1/orders/5/transitions", `{"trigger":"ARRIVE_CONFORMING"}`)

			s.Equal(tt.status, rec.Code)
			var body servers.Error
			s.decode(rec, &body)
			s.Equal(tt.status, body.Code)
			if tt.status >= http.StatusInternalServerError {
				s.NotContains(body.Message, "disk full")
			}
		})
	}
}

func (s *ServerTestSuite) TestTransitionOrder_UnknownTrigger() {
	rec := s.do(http.MethodPost, "/api/v1/orders/5/transitions", `{"trigger":"FLY_AWAY"}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.transition.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestEditOrder() {
	s.editOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.EditOrderCommand) bool {
		edit := cmd.Edit()
		return edit.PriceCost != nil && edit.PriceCost.String() == "12.00" &&
			edit.PriceSale == nil &&
			edit.Notes != nil && edit.Notes.Color == "White" &&
			edit.FreeNotes == nil
	})).Return(s.deliveredOrder, nil).Once()

	rec := s.do(http.MethodPatch, "/api/v1/orders/5", `{"price_cost":"12.00","notes":{"color":"White"}}`)

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestDeleteOrder_ActorFromToken() {
	s.deleteOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteOrderCommand) bool {
		return cmd.OrderID().Int64() == 5 && cmd.Actor() == "ana"
	})).Return(nil).Once()

	rec := s.do(http.MethodDelete, "/api/v1/orders/5", "", echo.HeaderAuthorization, bearer("ana", testSecret))

	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerTestSuite) TestDeleteOrder_RejectsBadTokens() {
	for name, header := range map[string]string{
		"wrong secret": bearer("ana", "other-secret"),
		"not bearer":   "Basic YW5hOnNlY3JldA==",
		"garbage":      "Bearer not-a-token",
		"no subject":   bearer("", testSecret),
	} {
		s.Run(name, func() {
			rec := s.do(http.MethodDelete, "/api/v1/orders/5", "", echo.HeaderAuthorization, header)
			s.Equal(http.StatusUnauthorized, rec.Code)
		})
	}
	s.deleteOrder.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestDeleteOrder_HasFinanceEntry() {
	s.deleteOrder.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewValueIsInvalidErrorWithCause("order", commands.ErrOrderHasFinanceEntry)).Once()

	rec := s.do(http.MethodDelete, "/api/v1/orders/5", "")

	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *ServerTestSuite) TestExportOrderDocument() {
	s.exportDocument.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ExportOrderDocumentCommand) bool {
		return cmd.OrderID().Int64() == 5
	})).Return("https://cdn.example.com/documents/order-5/x.txt", nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/orders/5/documents", "")

	s.Equal(http.StatusCreated, rec.Code)
	var ref servers.Reference
	s.decode(rec, &ref)
	s.Equal("https://cdn.example.com/documents/order-5/x.txt", ref.Ref)
}

func (s *ServerTestSuite) TestGetOrder() {
	details := queries.OrderDetails{
		OrderSummary: queries.OrderSummary{
			ID:         kernel.MustNewID(5),
			ClientID:   kernel.MustNewID(7),
			ClientName: "Hotel Miramar",
			Selection:  order.Selection{Category: "Bed sheet", Type: "Queen", Product: "4 pieces"},
			PriceCost:  kernel.MustMoney("10"),
			PriceSale:  kernel.MustMoney("25"),
			Status:     order.AwaitingConfection,
			CreatedAt:  s.now,
			UpdatedAt:  s.now,
		},
		Version: 2,
		Shipments: []queries.ShipmentView{
			{ID: kernel.MustNewID(1), Medium: "SHARED", SentAt: s.now, DocumentRef: "doc-1"},
		},
	}
	s.getOrder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetOrderQuery) bool {
		return q.OrderID().Int64() == 5
	})).Return(details, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders/5", "")

	s.Equal(http.StatusOK, rec.Code)
	var body servers.OrderDetails
	s.decode(rec, &body)
	s.Equal("AWAITING_CONFECTION", body.Status)
	s.Equal("10.00", body.PriceCost)
	s.Require().Len(body.Shipments, 1)
	s.Equal("doc-1", body.Shipments[0].DocumentRef)
	s.Empty(body.NonConformities)
}

func (s *ServerTestSuite) TestGetOrder_InvalidPath() {
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/orders/0", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/orders/abc", "").Code)
	s.getOrder.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestListOrders_ByStatus() {
	s.listOrders.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListOrdersQuery) bool {
		status, ok := q.Status()
		return ok && status == order.InStock
	})).Return([]queries.OrderSummary{
		{ID: kernel.MustNewID(9), ClientID: kernel.MustNewID(7), Status: order.InStock, CreatedAt: s.now, UpdatedAt: s.now},
		{ID: kernel.MustNewID(8), ClientID: kernel.MustNewID(7), Status: order.InStock, CreatedAt: s.now, UpdatedAt: s.now},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/orders?status=IN_STOCK", "")

	s.Equal(http.StatusOK, rec.Code)
	var body []servers.OrderSummary
	s.decode(rec, &body)
	s.Require().Len(body, 2)
	s.Equal(int64(9), body[0].Id)
}

func (s *ServerTestSuite) TestListOrders_UnknownStatus() {
	rec := s.do(http.MethodGet, "/api/v1/orders?status=LOST", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestListUnsettledEntries() {
	s.listUnsettled.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListUnsettledEntriesQuery) bool {
		return q.From() != nil && q.From().Equal(s.now) && q.To() == nil
	})).Return([]queries.UnsettledEntry{{
		EntryID:   kernel.MustNewID(1),
		OrderID:   kernel.MustNewID(5),
		Cost:      kernel.MustMoney("10"),
		Sale:      kernel.MustMoney("8"),
		Margin:    decimal.NewFromInt(-2),
		CreatedAt: s.now,
		ClientID:  kernel.MustNewID(7),
	}}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/finance/entries?from=2025-03-14T09:30:00Z", "")

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	var body []servers.UnsettledEntry
	s.decode(rec, &body)
	s.Require().Len(body, 1)
	s.Equal("-2.00", body[0].Margin)
}

func (s *ServerTestSuite) TestCreatePaymentBatch() {
	batch, err := finance.NewPaymentBatch(kernel.MustNewID(1), kernel.MustMoney("17.50"), s.now)
	s.Require().NoError(err)

	s.createBatch.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreatePaymentBatchCommand) bool {
		ids := cmd.OrderIDs()
		return len(ids) == 2 && ids[0].Int64() == 1 && ids[1].Int64() == 2
	})).Return(batch, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/finance/batches", `{"order_ids":[1,2]}`)

	s.Equal(http.StatusCreated, rec.Code)
	var body servers.PaymentBatch
	s.decode(rec, &body)
	s.Equal("17.50", body.Total)
}

func (s *ServerTestSuite) TestCreatePaymentBatch_EmptySelection() {
	rec := s.do(http.MethodPost, "/api/v1/finance/batches", `{"order_ids":[]}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.createBatch.AssertNotCalled(s.T(), "Handle", mock.Anything, mock.Anything)
}

func (s *ServerTestSuite) TestVerifyLedger() {
	s.verifyLedger.On("Handle", mock.Anything, mock.Anything).Return(queries.LedgerReport{
		EntriesChecked: 3,
		BatchesChecked: 1,
		MarginMismatches: []queries.MarginMismatch{
			{EntryID: kernel.MustNewID(2), Stored: decimal.NewFromInt(5), Expected: decimal.NewFromInt(4)},
		},
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/finance/integrity", "")

	s.Equal(http.StatusOK, rec.Code)
	var body servers.LedgerReport
	s.decode(rec, &body)
	s.False(body.Consistent)
	s.Equal(3, body.EntriesChecked)
	s.Require().Len(body.MarginMismatches, 1)
	s.Equal("4.00", body.MarginMismatches[0].Expected)
	s.NotNil(body.DanglingEntries)
}

func (s *ServerTestSuite) TestGetStatistics() {
	byStatus := make(map[order.Status]int)
	for _, st := range order.AllStatuses() {
		byStatus[st] = 0
	}
	byStatus[order.InStock] = 4
	s.statistics.On("Handle", mock.Anything, mock.Anything).Return(queries.Statistics{
		Clients:          2,
		Orders:           4,
		OrdersByStatus:   byStatus,
		UnsettledEntries: 1,
		UnsettledCost:    decimal.RequireFromString("7.5"),
		UnsettledMargin:  decimal.RequireFromString("4.5"),
		SettledTotal:     decimal.Zero,
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/stats", "")

	s.Equal(http.StatusOK, rec.Code)
	var body servers.Statistics
	s.decode(rec, &body)
	s.Equal(4, body.Orders)
	s.Equal(4, body.OrdersByStatus["IN_STOCK"])
	s.Contains(body.OrdersByStatus, "CREATED")
	s.Len(body.OrdersByStatus, len(order.AllStatuses()))
	s.Equal("7.50", body.UnsettledCost)
	s.Equal("0.00", body.SettledTotal)
}

func (s *ServerTestSuite) TestCleanOrphanedObjects_DryRun() {
	s.cleanOrphans.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CleanOrphanedObjectsCommand) bool {
		return !cmd.Remove() && cmd.MinAge() == commands.DefaultOrphanMinAge
	})).Return(commands.OrphanReport{Scanned: 3}, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/maintenance/orphaned-objects", `{"remove":false}`)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"scanned":3,"orphans":[],"removed":0}`, rec.Body.String())
}

func (s *ServerTestSuite) TestCleanOrphanedObjects_RemovesAsCaller() {
	orphan := "https://cdn/photos/orphan.jpg"
	s.cleanOrphans.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CleanOrphanedObjectsCommand) bool {
		return cmd.Remove() && cmd.MinAge() == 2*time.Hour && cmd.Actor() == "ana"
	})).Return(commands.OrphanReport{Scanned: 5, Orphans: []string{orphan}, Removed: 1}, nil).Once()

	rec := s.do(http.MethodPost, "/api/v1/maintenance/orphaned-objects", `{"remove":true,"min_age_hours":2}`,
		echo.HeaderAuthorization, bearer("ana", testSecret))

	s.Equal(http.StatusOK, rec.Code)
	var body servers.OrphanReport
	s.decode(rec, &body)
	s.Equal([]string{orphan}, body.Orphans)
	s.Equal(1, body.Removed)
}

func (s *ServerTestSuite) TestCleanOrphanedObjects_Errors() {
	rec := s.do(http.MethodPost, "/api/v1/maintenance/orphaned-objects", `{"remove":true,"min_age_hours":-1}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	s.cleanOrphans.On("Handle", mock.Anything, mock.Anything).
		Return(commands.OrphanReport{}, errs.NewStorageError("remove objects", errors.New("bucket gone"))).Once()

	rec = s.do(http.MethodPost, "/api/v1/maintenance/orphaned-objects", `{"remove":true}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ServerTestSuite) TestListAuditEntries() {
	s.listAudit.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListAuditEntriesQuery) bool {
		return q.Limit() == 2
	})).Return([]*audit.Entry{
		audit.RestoreEntry(2, audit.EntityOrder, "5", audit.ActionStatusUpdate, "status",
			json.RawMessage(`"IN_STOCK"`), json.RawMessage(`"DELIVERED"`), "ana", s.now),
		audit.RestoreEntry(1, audit.EntityOrder, "5", audit.ActionCreate, "", nil, json.RawMessage(`{"id":5}`), "system", s.now),
	}, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/audit?limit=2", "")

	s.Equal(http.StatusOK, rec.Code)
	var body []servers.AuditEntry
	s.decode(rec, &body)
	s.Require().Len(body, 2)
	s.Require().NotNil(body[0].Field)
	s.Equal("status", *body[0].Field)
	s.JSONEq(`"DELIVERED"`, string(*body[0].After))
	s.Nil(body[1].Field)
	s.Nil(body[1].Before)
}

func (s *ServerTestSuite) TestListAuditEntries_LimitOutOfRange() {
	rec := s.do(http.MethodGet, "/api/v1/audit?limit=501", "")

	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerTestSuite) TestCatalog() {
	s.getCatalog.On("Handle", mock.Anything, mock.Anything).Return(s.defaultCatalog, nil).Once()

	rec := s.do(http.MethodGet, "/api/v1/catalog", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var current servers.Catalog
	s.decode(rec, &current)
	s.NotEmpty(current.ProductHierarchy)

	current.Colors = append(current.Colors, "Sage")
	payload, err := json.Marshal(current)
	s.Require().NoError(err)

	s.updateCatalog.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateCatalogCommand) bool {
		colors := cmd.Catalog().Colors()
		return len(colors) > 0 && colors[len(colors)-1] == "Sage"
	})).Return([]string{catalog.KeyColors}, nil).Once()

	rec = s.do(http.MethodPut, "/api/v1/catalog", string(payload))

	s.Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated servers.CatalogUpdated
	s.decode(rec, &updated)
	s.Equal([]string{catalog.KeyColors}, updated.Changed)
}

func (s *ServerTestSuite) TestUploadPhoto() {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="stain.jpg"`)
	header.Set(echo.HeaderContentType, "image/jpeg")
	part, err := writer.CreatePart(header)
	s.Require().NoError(err)
	_, err = part.Write([]byte("jpeg-bytes"))
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	s.uploadPhoto.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UploadPhotoCommand) bool {
		return cmd.FileName() == "stain.jpg" && cmd.ContentType() == "image/jpeg"
	})).Return("https://cdn.example.com/photos/2025/03/x.jpg", nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var ref servers.Reference
	s.decode(rec, &ref)
	s.Equal("https://cdn.example.com/photos/2025/03/x.jpg", ref.Ref)
}

func TestNewRouter_WithoutSecretIgnoresTokens(t *testing.T) {
	deleteOrder := &MockDeleteOrderHandler{}
	deleteOrder.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DeleteOrderCommand) bool {
		return cmd.Actor() == audit.DefaultActor
	})).Return(nil).Once()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(httpin.Commands{DeleteOrder: deleteOrder}, httpin.Queries{}, logger)
	router, err := httpin.NewRouter(server, httpin.RouterConfig{Logger: logger})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/5", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer whatever")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	deleteOrder.AssertExpectations(t)
}
