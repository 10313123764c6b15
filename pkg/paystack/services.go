package paystack

// Each service groups the endpoints of one section of the Paystack API and
// shares the Client it was obtained from.

type TransactionsService struct{ *Client }

type SplitsService struct{ *Client }

type CustomersService struct{ *Client }

type RefundsService struct{ *Client }

type SubaccountsService struct{ *Client }

type DedicatedAccountsService struct{ *Client }

type PlansService struct{ *Client }

type SubscriptionsService struct{ *Client }

type ProductsService struct{ *Client }

type PagesService struct{ *Client }

type InvoicesService struct{ *Client }

type SettlementsService struct{ *Client }

type RecipientsService struct{ *Client }

type TransfersService struct{ *Client }

type TransferControlService struct{ *Client }

type BulkChargesService struct{ *Client }

type IntegrationService struct{ *Client }

type ChargesService struct{ *Client }

type DisputesService struct{ *Client }

type VerificationService struct{ *Client }

type MiscService struct{ *Client }

func (c *Client) Transactions() TransactionsService { return TransactionsService{c} }

func (c *Client) Splits() SplitsService { return SplitsService{c} }

func (c *Client) Customers() CustomersService { return CustomersService{c} }

func (c *Client) Refunds() RefundsService { return RefundsService{c} }

func (c *Client) Subaccounts() SubaccountsService { return SubaccountsService{c} }

func (c *Client) DedicatedAccounts() DedicatedAccountsService { return DedicatedAccountsService{c} }

func (c *Client) Plans() PlansService { return PlansService{c} }

func (c *Client) Subscriptions() SubscriptionsService { return SubscriptionsService{c} }

func (c *Client) Products() ProductsService { return ProductsService{c} }

func (c *Client) Pages() PagesService { return PagesService{c} }

func (c *Client) Invoices() InvoicesService { return InvoicesService{c} }

func (c *Client) Settlements() SettlementsService { return SettlementsService{c} }

func (c *Client) Recipients() RecipientsService { return RecipientsService{c} }

func (c *Client) Transfers() TransfersService { return TransfersService{c} }

func (c *Client) TransferControl() TransferControlService { return TransferControlService{c} }

func (c *Client) BulkCharges() BulkChargesService { return BulkChargesService{c} }

func (c *Client) Integration() IntegrationService { return IntegrationService{c} }

func (c *Client) Charges() ChargesService { return ChargesService{c} }

func (c *Client) Disputes() DisputesService { return DisputesService{c} }

func (c *Client) Verification() VerificationService { return VerificationService{c} }

func (c *Client) Misc() MiscService { return MiscService{c} }
