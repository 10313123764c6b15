package paystack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
	List   []any
}

func newRecordingServer(t *testing.T) (*Client, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.Method = r.Method
		rec.Path = r.URL.Path
		rec.Query = r.URL.RawQuery
		rec.Body = nil
		rec.List = nil
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if raw[0] == '[' {
				_ = json.Unmarshal(raw, &rec.List)
			} else {
				_ = json.Unmarshal(raw, &rec.Body)
			}
		}
		_, _ = w.Write([]byte(`{"status":true,"message":"ok","data":{}}`))
	}))
	t.Cleanup(server.Close)
	return newTestClient(server.URL), rec
}

func TestResourceOperations(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		call   func(c *Client) (*Response, error)
		method string
		path   string
		query  string
		body   map[string]any
	}{
		// transactions
		{"transactions initialize", func(c *Client) (*Response, error) {
			return c.Transactions().Initialize(ctx, InitializeTransactionRequest{Email: "a@b.co", Amount: 20000, Channels: []Channel{ChannelCard}, Bearer: BearerSubaccount})
		}, "POST", "/transaction/initialize", "", map[string]any{"email": "a@b.co", "amount": float64(20000), "channels": []any{"card"}, "bearer": "subaccount"}},
		{"transactions verify", func(c *Client) (*Response, error) { return c.Transactions().Verify(ctx, "ref/1") }, "GET", "/transaction/verify/ref/1", "", nil},
		{"transactions fetch", func(c *Client) (*Response, error) { return c.Transactions().Fetch(ctx, 99) }, "GET", "/transaction/99", "", nil},
		{"transactions charge authorization", func(c *Client) (*Response, error) {
			return c.Transactions().ChargeAuthorization(ctx, ChargeAuthorizationRequest{Amount: 100, Email: "a@b.co", AuthorizationCode: "AUTH_1"})
		}, "POST", "/transaction/charge_authorization", "", map[string]any{"amount": float64(100), "email": "a@b.co", "authorization_code": "AUTH_1"}},
		{"transactions check authorization", func(c *Client) (*Response, error) {
			return c.Transactions().CheckAuthorization(ctx, CheckAuthorizationRequest{Amount: 100, Email: "a@b.co", AuthorizationCode: "AUTH_1"})
		}, "POST", "/transaction/check_authorization", "", map[string]any{"amount": float64(100), "email": "a@b.co", "authorization_code": "AUTH_1"}},
		{"transactions timeline", func(c *Client) (*Response, error) { return c.Transactions().Timeline(ctx, "ref1") }, "GET", "/transaction/timeline/ref1", "", nil},
		{"transactions totals", func(c *Client) (*Response, error) {
			return c.Transactions().Totals(ctx, TransactionTotalsParams{ListOptions{PerPage: 10}})
		}, "GET", "/transaction/totals", "perPage=10", nil},
		{"transactions export", func(c *Client) (*Response, error) {
			return c.Transactions().Export(ctx, ExportTransactionsParams{Settled: Bool(false), Currency: GHS})
		}, "GET", "/transaction/export", "currency=GHS&settled=false", nil},
		{"transactions partial debit", func(c *Client) (*Response, error) {
			return c.Transactions().PartialDebit(ctx, PartialDebitRequest{AuthorizationCode: "AUTH_1", Currency: NGN, Amount: 500, Email: "a@b.co"})
		}, "POST", "/transaction/partial_debit", "", map[string]any{"authorization_code": "AUTH_1", "currency": "NGN", "amount": float64(500), "email": "a@b.co"}},

		// splits
		{"splits create", func(c *Client) (*Response, error) {
			return c.Splits().Create(ctx, CreateSplitRequest{Name: "s", Type: "percentage", Currency: NGN, Subaccounts: []SplitShare{{Subaccount: "ACCT_1", Share: 20}}, BearerType: "account"})
		}, "POST", "/split", "", map[string]any{"name": "s", "type": "percentage", "currency": "NGN", "subaccounts": []any{map[string]any{"subaccount": "ACCT_1", "share": float64(20)}}, "bearer_type": "account"}},
		{"splits list", func(c *Client) (*Response, error) {
			return c.Splits().List(ctx, ListSplitsParams{Name: "s", Active: Bool(true)})
		}, "GET", "/split", "active=true&name=s", nil},
		{"splits fetch", func(c *Client) (*Response, error) { return c.Splits().Fetch(ctx, "143") }, "GET", "/split/143", "", nil},
		{"splits update", func(c *Client) (*Response, error) {
			return c.Splits().Update(ctx, "143", UpdateSplitRequest{Active: Bool(false)})
		}, "PUT", "/split/143", "", map[string]any{"active": false}},
		{"splits add subaccount", func(c *Client) (*Response, error) {
			return c.Splits().AddSubaccount(ctx, "143", SplitShare{Subaccount: "ACCT_2", Share: 10})
		}, "POST", "/split/143/subaccount/add", "", map[string]any{"subaccount": "ACCT_2", "share": float64(10)}},
		{"splits remove subaccount", func(c *Client) (*Response, error) {
			return c.Splits().RemoveSubaccount(ctx, "143", RemoveSplitSubaccountRequest{Subaccount: "ACCT_2"})
		}, "POST", "/split/143/subaccount/remove", "", map[string]any{"subaccount": "ACCT_2"}},

		// customers
		{"customers create", func(c *Client) (*Response, error) {
			return c.Customers().Create(ctx, CreateCustomerRequest{Email: "a@b.co", FirstName: "Ada"})
		}, "POST", "/customer", "", map[string]any{"email": "a@b.co", "first_name": "Ada"}},
		{"customers list", func(c *Client) (*Response, error) {
			return c.Customers().List(ctx, ListCustomersParams{ListOptions{Page: 2}})
		}, "GET", "/customer", "page=2", nil},
		{"customers fetch", func(c *Client) (*Response, error) { return c.Customers().Fetch(ctx, "CUS_1") }, "GET", "/customer/CUS_1", "", nil},
		{"customers update", func(c *Client) (*Response, error) {
			return c.Customers().Update(ctx, "CUS_1", UpdateCustomerRequest{Phone: "+234"})
		}, "PUT", "/customer/CUS_1", "", map[string]any{"phone": "+234"}},
		{"customers validate", func(c *Client) (*Response, error) {
			return c.Customers().Validate(ctx, "CUS_1", ValidateCustomerRequest{Country: "NG", Type: "bank_account", FirstName: "A", LastName: "B", BVN: "200"})
		}, "POST", "/customer/CUS_1/identification", "", map[string]any{"country": "NG", "type": "bank_account", "first_name": "A", "last_name": "B", "bvn": "200"}},
		{"customers set risk action", func(c *Client) (*Response, error) {
			return c.Customers().SetRiskAction(ctx, SetRiskActionRequest{Customer: "CUS_1", RiskAction: RiskActionDeny})
		}, "POST", "/customer/set_risk_action", "", map[string]any{"customer": "CUS_1", "risk_action": "deny"}},
		{"customers deactivate authorization", func(c *Client) (*Response, error) {
			return c.Customers().DeactivateAuthorization(ctx, DeactivateAuthorizationRequest{AuthorizationCode: "AUTH_1"})
		}, "POST", "/customer/deactivate_authorization", "", map[string]any{"authorization_code": "AUTH_1"}},

		// refunds
		{"refunds create", func(c *Client) (*Response, error) {
			return c.Refunds().Create(ctx, CreateRefundRequest{Transaction: "ref1", Amount: 100})
		}, "POST", "/refund", "", map[string]any{"transaction": "ref1", "amount": float64(100)}},
		{"refunds list", func(c *Client) (*Response, error) {
			return c.Refunds().List(ctx, ListRefundsParams{Currency: NGN})
		}, "GET", "/refund", "currency=NGN", nil},
		{"refunds fetch", func(c *Client) (*Response, error) { return c.Refunds().Fetch(ctx, "1") }, "GET", "/refund/1", "", nil},

		// subaccounts
		{"subaccounts create", func(c *Client) (*Response, error) {
			return c.Subaccounts().Create(ctx, CreateSubaccountRequest{BusinessName: "B", SettlementBank: "058", AccountNumber: "0123456789", PercentageCharge: 18.2})
		}, "POST", "/subaccount", "", map[string]any{"business_name": "B", "settlement_bank": "058", "account_number": "0123456789", "percentage_charge": 18.2}},
		{"subaccounts list", func(c *Client) (*Response, error) { return c.Subaccounts().List(ctx, ListSubaccountsParams{}) }, "GET", "/subaccount", "", nil},
		{"subaccounts fetch", func(c *Client) (*Response, error) { return c.Subaccounts().Fetch(ctx, "ACCT_1") }, "GET", "/subaccount/ACCT_1", "", nil},
		{"subaccounts update", func(c *Client) (*Response, error) {
			return c.Subaccounts().Update(ctx, "ACCT_1", UpdateSubaccountRequest{Active: Bool(false)})
		}, "PUT", "/subaccount/ACCT_1", "", map[string]any{"active": false}},

		// dedicated accounts
		{"dedicated create", func(c *Client) (*Response, error) {
			return c.DedicatedAccounts().Create(ctx, CreateDedicatedAccountRequest{Customer: "CUS_1", PreferredBank: "wema-bank"})
		}, "POST", "/dedicated_account", "", map[string]any{"customer": "CUS_1", "preferred_bank": "wema-bank"}},
		{"dedicated list", func(c *Client) (*Response, error) {
			return c.DedicatedAccounts().List(ctx, ListDedicatedAccountsParams{Active: Bool(true), Currency: NGN})
		}, "GET", "/dedicated_account", "active=true&currency=NGN", nil},
		{"dedicated fetch", func(c *Client) (*Response, error) { return c.DedicatedAccounts().Fetch(ctx, 7) }, "GET", "/dedicated_account/7", "", nil},
		{"dedicated deactivate", func(c *Client) (*Response, error) { return c.DedicatedAccounts().Deactivate(ctx, 7) }, "DELETE", "/dedicated_account/7", "", nil},
		{"dedicated split", func(c *Client) (*Response, error) {
			return c.DedicatedAccounts().SplitTransaction(ctx, SplitDedicatedAccountRequest{Customer: "CUS_1", SplitCode: "SPL_1"})
		}, "POST", "/dedicated_account/split", "", map[string]any{"customer": "CUS_1", "split_code": "SPL_1"}},
		{"dedicated remove split", func(c *Client) (*Response, error) {
			return c.DedicatedAccounts().RemoveSplit(ctx, RemoveDedicatedAccountSplitRequest{AccountNumber: "0033322211"})
		}, "DELETE", "/dedicated_account/split", "", map[string]any{"account_number": "0033322211"}},
		{"dedicated providers", func(c *Client) (*Response, error) { return c.DedicatedAccounts().Providers(ctx) }, "GET", "/dedicated_account/available_providers", "", nil},
		{"dedicated requery", func(c *Client) (*Response, error) {
			return c.DedicatedAccounts().Requery(ctx, RequeryDedicatedAccountParams{AccountNumber: "0033322211", ProviderSlug: "wema-bank", Date: day})
		}, "GET", "/dedicated_account/requery", "account_number=0033322211&date=2024-05-06&provider_slug=wema-bank", nil},

		// plans
		{"plans create", func(c *Client) (*Response, error) {
			return c.Plans().Create(ctx, CreatePlanRequest{Name: "Monthly", Amount: 500000, Interval: Quarterly})
		}, "POST", "/plan", "", map[string]any{"name": "Monthly", "amount": float64(500000), "interval": "quarterly"}},
		{"plans list", func(c *Client) (*Response, error) {
			return c.Plans().List(ctx, ListPlansParams{Interval: Monthly, Amount: 100})
		}, "GET", "/plan", "amount=100&interval=monthly", nil},
		{"plans fetch", func(c *Client) (*Response, error) { return c.Plans().Fetch(ctx, "PLN_1") }, "GET", "/plan/PLN_1", "", nil},
		{"plans update", func(c *Client) (*Response, error) {
			return c.Plans().Update(ctx, "PLN_1", UpdatePlanRequest{Name: "x"})
		}, "PUT", "/plan/PLN_1", "", map[string]any{"name": "x"}},

		// subscriptions
		{"subscriptions create", func(c *Client) (*Response, error) {
			return c.Subscriptions().Create(ctx, CreateSubscriptionRequest{Customer: "CUS_1", Plan: "PLN_1"})
		}, "POST", "/subscription", "", map[string]any{"customer": "CUS_1", "plan": "PLN_1"}},
		{"subscriptions list", func(c *Client) (*Response, error) {
			return c.Subscriptions().List(ctx, ListSubscriptionsParams{Customer: 5, Plan: 6})
		}, "GET", "/subscription", "customer=5&plan=6", nil},
		{"subscriptions fetch", func(c *Client) (*Response, error) { return c.Subscriptions().Fetch(ctx, "SUB_1") }, "GET", "/subscription/SUB_1", "", nil},
		{"subscriptions enable", func(c *Client) (*Response, error) {
			return c.Subscriptions().Enable(ctx, SubscriptionToggleRequest{Code: "SUB_1", Token: "tok"})
		}, "POST", "/subscription/enable", "", map[string]any{"code": "SUB_1", "token": "tok"}},
		{"subscriptions disable", func(c *Client) (*Response, error) {
			return c.Subscriptions().Disable(ctx, SubscriptionToggleRequest{Code: "SUB_1", Token: "tok"})
		}, "POST", "/subscription/disable", "", map[string]any{"code": "SUB_1", "token": "tok"}},
		{"subscriptions update link", func(c *Client) (*Response, error) { return c.Subscriptions().GenerateUpdateLink(ctx, "SUB_1") }, "GET", "/subscription/SUB_1/manage/link", "", nil},
		{"subscriptions email link", func(c *Client) (*Response, error) { return c.Subscriptions().SendUpdateLink(ctx, "SUB_1") }, "POST", "/subscription/SUB_1/manage/email", "", nil},

		// products
		{"products create", func(c *Client) (*Response, error) {
			return c.Products().Create(ctx, CreateProductRequest{Name: "P", Description: "d", Price: 100, Currency: NGN})
		}, "POST", "/product", "", map[string]any{"name": "P", "description": "d", "price": float64(100), "currency": "NGN"}},
		{"products list", func(c *Client) (*Response, error) { return c.Products().List(ctx, ListProductsParams{}) }, "GET", "/product", "", nil},
		{"products fetch", func(c *Client) (*Response, error) { return c.Products().Fetch(ctx, "1") }, "GET", "/product/1", "", nil},
		{"products update", func(c *Client) (*Response, error) {
			return c.Products().Update(ctx, "1", UpdateProductRequest{Quantity: 3})
		}, "PUT", "/product/1", "", map[string]any{"quantity": float64(3)}},

		// pages
		{"pages create", func(c *Client) (*Response, error) {
			return c.Pages().Create(ctx, CreatePageRequest{Name: "Buy", Amount: 100})
		}, "POST", "/page", "", map[string]any{"name": "Buy", "amount": float64(100)}},
		{"pages list", func(c *Client) (*Response, error) { return c.Pages().List(ctx, ListPagesParams{}) }, "GET", "/page", "", nil},
		{"pages fetch", func(c *Client) (*Response, error) { return c.Pages().Fetch(ctx, "buy") }, "GET", "/page/buy", "", nil},
		{"pages update", func(c *Client) (*Response, error) {
			return c.Pages().Update(ctx, "buy", UpdatePageRequest{Active: Bool(false)})
		}, "PUT", "/page/buy", "", map[string]any{"active": false}},
		{"pages check slug", func(c *Client) (*Response, error) { return c.Pages().CheckSlug(ctx, "buy") }, "GET", "/page/check_slug_availability/buy", "", nil},
		{"pages add products", func(c *Client) (*Response, error) {
			return c.Pages().AddProducts(ctx, 12, AddPageProductsRequest{Product: []int64{1, 2}})
		}, "POST", "/page/12/product", "", map[string]any{"product": []any{float64(1), float64(2)}}},

		// invoices
		{"invoices create", func(c *Client) (*Response, error) {
			return c.Invoices().Create(ctx, CreateInvoiceRequest{Customer: "CUS_1", Amount: 100})
		}, "POST", "/paymentrequest", "", map[string]any{"customer": "CUS_1", "amount": float64(100)}},
		{"invoices list", func(c *Client) (*Response, error) {
			return c.Invoices().List(ctx, ListInvoicesParams{Status: "pending", IncludeArchive: Bool(true)})
		}, "GET", "/paymentrequest", "include_archive=true&status=pending", nil},
		{"invoices fetch", func(c *Client) (*Response, error) { return c.Invoices().Fetch(ctx, "PRQ_1") }, "GET", "/paymentrequest/PRQ_1", "", nil},
		{"invoices verify", func(c *Client) (*Response, error) { return c.Invoices().Verify(ctx, "PRQ_1") }, "GET", "/paymentrequest/verify/PRQ_1", "", nil},
		{"invoices notify", func(c *Client) (*Response, error) { return c.Invoices().Notify(ctx, "PRQ_1") }, "POST", "/paymentrequest/notify/PRQ_1", "", nil},
		{"invoices totals", func(c *Client) (*Response, error) { return c.Invoices().Totals(ctx) }, "GET", "/paymentrequest/totals", "", nil},
		{"invoices finalize", func(c *Client) (*Response, error) { return c.Invoices().Finalize(ctx, "PRQ_1") }, "POST", "/paymentrequest/finalize/PRQ_1", "", nil},
		{"invoices update", func(c *Client) (*Response, error) {
			return c.Invoices().Update(ctx, "PRQ_1", UpdateInvoiceRequest{Description: "x"})
		}, "PUT", "/paymentrequest/PRQ_1", "", map[string]any{"description": "x"}},
		{"invoices archive", func(c *Client) (*Response, error) { return c.Invoices().Archive(ctx, "PRQ_1") }, "POST", "/paymentrequest/archive/PRQ_1", "", nil},

		// settlements
		{"settlements list", func(c *Client) (*Response, error) {
			return c.Settlements().List(ctx, ListSettlementsParams{Subaccount: "none"})
		}, "GET", "/settlement", "subaccount=none", nil},
		{"settlements transactions", func(c *Client) (*Response, error) {
			return c.Settlements().Transactions(ctx, "3080", SettlementTransactionsParams{})
		}, "GET", "/settlement/3080/transactions", "", nil},

		// recipients
		{"recipients create", func(c *Client) (*Response, error) {
			return c.Recipients().Create(ctx, CreateRecipientRequest{Type: RecipientNUBAN, Name: "T", AccountNumber: "01", BankCode: "058"})
		}, "POST", "/transferrecipient", "", map[string]any{"type": "nuban", "name": "T", "account_number": "01", "bank_code": "058"}},
		{"recipients bulk create", func(c *Client) (*Response, error) {
			return c.Recipients().BulkCreate(ctx, BulkCreateRecipientsRequest{Batch: []CreateRecipientRequest{{Type: RecipientNUBAN, Name: "T"}}})
		}, "POST", "/transferrecipient/bulk", "", map[string]any{"batch": []any{map[string]any{"type": "nuban", "name": "T"}}}},
		{"recipients list", func(c *Client) (*Response, error) { return c.Recipients().List(ctx, ListRecipientsParams{}) }, "GET", "/transferrecipient", "", nil},
		{"recipients fetch", func(c *Client) (*Response, error) { return c.Recipients().Fetch(ctx, "RCP_1") }, "GET", "/transferrecipient/RCP_1", "", nil},
		{"recipients update", func(c *Client) (*Response, error) {
			return c.Recipients().Update(ctx, "RCP_1", UpdateRecipientRequest{Name: "N"})
		}, "PUT", "/transferrecipient/RCP_1", "", map[string]any{"name": "N"}},
		{"recipients delete", func(c *Client) (*Response, error) { return c.Recipients().Delete(ctx, "RCP_1") }, "DELETE", "/transferrecipient/RCP_1", "", nil},

		// transfers
		{"transfers initiate", func(c *Client) (*Response, error) {
			return c.Transfers().Initiate(ctx, InitiateTransferRequest{Amount: 100, Recipient: "RCP_1"})
		}, "POST", "/transfer", "", map[string]any{"source": "balance", "amount": float64(100), "recipient": "RCP_1"}},
		{"transfers finalize", func(c *Client) (*Response, error) {
			return c.Transfers().Finalize(ctx, FinalizeTransferRequest{TransferCode: "TRF_1", OTP: "123"})
		}, "POST", "/transfer/finalize_transfer", "", map[string]any{"transfer_code": "TRF_1", "otp": "123"}},
		{"transfers bulk", func(c *Client) (*Response, error) {
			return c.Transfers().Bulk(ctx, BulkTransferRequest{Transfers: []BulkTransferItem{{Amount: 1, Recipient: "RCP_1"}}})
		}, "POST", "/transfer/bulk", "", map[string]any{"source": "balance", "transfers": []any{map[string]any{"amount": float64(1), "recipient": "RCP_1"}}}},
		{"transfers list", func(c *Client) (*Response, error) {
			return c.Transfers().List(ctx, ListTransfersParams{Status: "success"})
		}, "GET", "/transfer", "status=success", nil},
		{"transfers fetch", func(c *Client) (*Response, error) { return c.Transfers().Fetch(ctx, "TRF_1") }, "GET", "/transfer/TRF_1", "", nil},
		{"transfers verify", func(c *Client) (*Response, error) { return c.Transfers().Verify(ctx, "ref") }, "GET", "/transfer/verify/ref", "", nil},

		// transfer control
		{"balance", func(c *Client) (*Response, error) { return c.TransferControl().Balance(ctx) }, "GET", "/balance", "", nil},
		{"ledger", func(c *Client) (*Response, error) { return c.TransferControl().Ledger(ctx, LedgerParams{}) }, "GET", "/balance/ledger", "", nil},
		{"resend otp", func(c *Client) (*Response, error) {
			return c.TransferControl().ResendOTP(ctx, ResendOTPRequest{TransferCode: "TRF_1", Reason: OTPReasonTransfer})
		}, "POST", "/transfer/resend_otp", "", map[string]any{"transfer_code": "TRF_1", "reason": "transfer"}},
		{"disable otp", func(c *Client) (*Response, error) { return c.TransferControl().DisableOTP(ctx) }, "POST", "/transfer/disable_otp", "", nil},
		{"finalize disable otp", func(c *Client) (*Response, error) {
			return c.TransferControl().FinalizeDisableOTP(ctx, FinalizeDisableOTPRequest{OTP: "9"})
		}, "POST", "/transfer/disable_otp_finalize", "", map[string]any{"otp": "9"}},
		{"enable otp", func(c *Client) (*Response, error) { return c.TransferControl().EnableOTP(ctx) }, "POST", "/transfer/enable_otp", "", nil},

		// bulk charges
		{"bulk charges list", func(c *Client) (*Response, error) { return c.BulkCharges().List(ctx, ListBulkChargesParams{}) }, "GET", "/bulkcharge", "", nil},
		{"bulk charges fetch", func(c *Client) (*Response, error) { return c.BulkCharges().Fetch(ctx, "BCH_1") }, "GET", "/bulkcharge/BCH_1", "", nil},
		{"bulk charges charges", func(c *Client) (*Response, error) {
			return c.BulkCharges().Charges(ctx, "BCH_1", BulkChargeChargesParams{Status: "failed"})
		}, "GET", "/bulkcharge/BCH_1/charges", "status=failed", nil},
		{"bulk charges pause", func(c *Client) (*Response, error) { return c.BulkCharges().Pause(ctx, "BCH_1") }, "GET", "/bulkcharge/pause/BCH_1", "", nil},
		{"bulk charges resume", func(c *Client) (*Response, error) { return c.BulkCharges().Resume(ctx, "BCH_1") }, "GET", "/bulkcharge/resume/BCH_1", "", nil},

		// integration
		{"session timeout", func(c *Client) (*Response, error) { return c.Integration().PaymentSessionTimeout(ctx) }, "GET", "/integration/payment_session_timeout", "", nil},
		{"update session timeout", func(c *Client) (*Response, error) { return c.Integration().UpdatePaymentSessionTimeout(ctx, 30) }, "PUT", "/integration/payment_session_timeout", "", map[string]any{"timeout": float64(30)}},

		// charges
		{"charge create", func(c *Client) (*Response, error) {
			return c.Charges().Create(ctx, CreateChargeRequest{Email: "a@b.co", Amount: 100, Bank: &BankDetails{Code: "057", AccountNumber: "0000000000"}})
		}, "POST", "/charge", "", map[string]any{"email": "a@b.co", "amount": float64(100), "bank": map[string]any{"code": "057", "account_number": "0000000000"}}},
		{"charge submit pin", func(c *Client) (*Response, error) {
			return c.Charges().SubmitPIN(ctx, SubmitPINRequest{PIN: "1234", Reference: "r"})
		}, "POST", "/charge/submit_pin", "", map[string]any{"pin": "1234", "reference": "r"}},
		{"charge submit otp", func(c *Client) (*Response, error) {
			return c.Charges().SubmitOTP(ctx, SubmitOTPRequest{OTP: "1", Reference: "r"})
		}, "POST", "/charge/submit_otp", "", map[string]any{"otp": "1", "reference": "r"}},
		{"charge submit phone", func(c *Client) (*Response, error) {
			return c.Charges().SubmitPhone(ctx, SubmitPhoneRequest{Phone: "080", Reference: "r"})
		}, "POST", "/charge/submit_phone", "", map[string]any{"phone": "080", "reference": "r"}},
		{"charge submit birthday", func(c *Client) (*Response, error) {
			return c.Charges().SubmitBirthday(ctx, SubmitBirthdayRequest{Birthday: "1990-01-01", Reference: "r"})
		}, "POST", "/charge/submit_birthday", "", map[string]any{"birthday": "1990-01-01", "reference": "r"}},
		{"charge submit address", func(c *Client) (*Response, error) {
			return c.Charges().SubmitAddress(ctx, SubmitAddressRequest{Address: "1 Rd", Reference: "r", City: "Lagos", State: "LA", ZipCode: "100001"})
		}, "POST", "/charge/submit_address", "", map[string]any{"address": "1 Rd", "reference": "r", "city": "Lagos", "state": "LA", "zipcode": "100001"}},
		{"charge check pending", func(c *Client) (*Response, error) { return c.Charges().CheckPending(ctx, "r") }, "GET", "/charge/r", "", nil},

		// disputes
		{"disputes list", func(c *Client) (*Response, error) {
			return c.Disputes().List(ctx, ListDisputesParams{Status: DisputePending, Transaction: "1"})
		}, "GET", "/dispute", "status=pending&transaction=1", nil},
		{"disputes fetch", func(c *Client) (*Response, error) { return c.Disputes().Fetch(ctx, "2") }, "GET", "/dispute/2", "", nil},
		{"disputes transaction", func(c *Client) (*Response, error) { return c.Disputes().ListTransactionDisputes(ctx, "5") }, "GET", "/dispute/transaction/5", "", nil},
		{"disputes update", func(c *Client) (*Response, error) {
			return c.Disputes().Update(ctx, "2", UpdateDisputeRequest{RefundAmount: 100})
		}, "PUT", "/dispute/2", "", map[string]any{"refund_amount": float64(100)}},
		{"disputes evidence", func(c *Client) (*Response, error) {
			return c.Disputes().AddEvidence(ctx, "2", DisputeEvidenceRequest{CustomerEmail: "a@b.co", CustomerName: "A", CustomerPhone: "1", ServiceDetails: "s"})
		}, "POST", "/dispute/2/evidence", "", map[string]any{"customer_email": "a@b.co", "customer_name": "A", "customer_phone": "1", "service_details": "s"}},
		{"disputes upload url", func(c *Client) (*Response, error) { return c.Disputes().UploadURL(ctx, "2", "proof.pdf") }, "GET", "/dispute/2/upload_url", "upload_filename=proof.pdf", nil},
		{"disputes resolve", func(c *Client) (*Response, error) {
			return c.Disputes().Resolve(ctx, "2", ResolveDisputeRequest{Resolution: "declined", Message: "m", RefundAmount: 0, UploadedFilename: "f"})
		}, "PUT", "/dispute/2/resolve", "", map[string]any{"resolution": "declined", "message": "m", "refund_amount": float64(0), "uploaded_filename": "f"}},
		{"disputes export", func(c *Client) (*Response, error) {
			return c.Disputes().Export(ctx, ListDisputesParams{ListOptions: ListOptions{PerPage: 5}})
		}, "GET", "/dispute/export", "perPage=5", nil},

		// verification
		{"match bvn", func(c *Client) (*Response, error) {
			return c.Verification().MatchBVN(ctx, MatchBVNRequest{AccountNumber: "1", BankCode: "2", BVN: "3"})
		}, "POST", "/bvn/match", "", map[string]any{"account_number": "1", "bank_code": "2", "bvn": "3"}},
		{"resolve account", func(c *Client) (*Response, error) { return c.Verification().ResolveAccount(ctx, "0022728151", "063") }, "GET", "/bank/resolve", "account_number=0022728151&bank_code=063", nil},
		{"resolve card bin", func(c *Client) (*Response, error) { return c.Verification().ResolveCardBIN(ctx, "539983") }, "GET", "/decision/bin/539983", "", nil},

		// misc
		{"list banks", func(c *Client) (*Response, error) {
			return c.Misc().ListBanks(ctx, ListBanksParams{Country: "nigeria", PerPage: 50})
		}, "GET", "/bank", "country=nigeria&perPage=50", nil},
		{"list providers", func(c *Client) (*Response, error) { return c.Misc().ListProviders(ctx) }, "GET", "/bank", "pay_with_bank_transfer=true", nil},
		{"list countries", func(c *Client) (*Response, error) { return c.Misc().ListCountries(ctx) }, "GET", "/country", "", nil},
		{"list states", func(c *Client) (*Response, error) { return c.Misc().ListStates(ctx, "CA") }, "GET", "/address_verification/states", "country=CA", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newRecordingServer(t)
			resp, err := tt.call(client)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.path, rec.Path)
			assert.Equal(t, tt.query, rec.Query)
			assert.Equal(t, tt.body, rec.Body)
		})
	}
}

func TestBulkChargeInitiateSendsArray(t *testing.T) {
	client, rec := newRecordingServer(t)
	_, err := client.BulkCharges().Initiate(context.Background(), []BulkChargeItem{
		{Authorization: "AUTH_1", Amount: 100, Reference: "r1"},
		{Authorization: "AUTH_2", Amount: 200},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.Equal(t, "/bulkcharge", rec.Path)
	require.Len(t, rec.List, 2)
	assert.Equal(t, map[string]any{"authorization": "AUTH_1", "amount": float64(100), "reference": "r1"}, rec.List[0])
}

func TestResourceValidation(t *testing.T) {
	ctx := context.Background()
	client := newTestClient("http://127.0.0.1:1")

	tests := []struct {
		name string
		call func() (*Response, error)
		want string
	}{
		{"initialize without email", func() (*Response, error) {
			return client.Transactions().Initialize(ctx, InitializeTransactionRequest{Amount: 1})
		}, "email is required"},
		{"initialize without amount", func() (*Response, error) {
			return client.Transactions().Initialize(ctx, InitializeTransactionRequest{Email: "a@b.co"})
		}, "amount must be greater than zero"},
		{"verify without reference", func() (*Response, error) { return client.Transactions().Verify(ctx, " ") }, "reference is required"},
		{"split bad type", func() (*Response, error) {
			return client.Splits().Create(ctx, CreateSplitRequest{Name: "s", Type: "ratio"})
		}, "invalid type"},
		{"plan bad interval", func() (*Response, error) {
			return client.Plans().Create(ctx, CreatePlanRequest{Name: "p", Interval: "fortnightly"})
		}, "invalid interval"},
		{"risk action", func() (*Response, error) {
			return client.Customers().SetRiskAction(ctx, SetRiskActionRequest{Customer: "c", RiskAction: "block"})
		}, "invalid risk_action"},
		{"resend otp reason", func() (*Response, error) {
			return client.TransferControl().ResendOTP(ctx, ResendOTPRequest{TransferCode: "t", Reason: "x"})
		}, "invalid reason"},
		{"card bin", func() (*Response, error) { return client.Verification().ResolveCardBIN(ctx, "12ab") }, "card BIN"},
		{"resolve account", func() (*Response, error) { return client.Verification().ResolveAccount(ctx, "", "058") }, "account number and bank code"},
		{"bulk charge status", func() (*Response, error) {
			return client.BulkCharges().Charges(ctx, "BCH_1", BulkChargeChargesParams{Status: "done"})
		}, "invalid status"},
		{"dispute resolution", func() (*Response, error) {
			return client.Disputes().Resolve(ctx, "1", ResolveDisputeRequest{Resolution: "maybe"})
		}, "invalid resolution"},
		{"empty bulk charge", func() (*Response, error) { return client.BulkCharges().Initiate(ctx, nil) }, "at least one charge"},
		{"negative timeout", func() (*Response, error) { return client.Integration().UpdatePaymentSessionTimeout(ctx, -1) }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewReference(t *testing.T) {
	a, b := NewReference(), NewReference()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^ps_[0-9a-f]{32}$`, a)
}
