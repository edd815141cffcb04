package sevd

import (
	"context"
	"strconv"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-paygw/internal/validation"
	"github.com/sirosfoundation/go-paygw/pkg/config"
	"github.com/sirosfoundation/go-paygw/pkg/gwerr"
)

const (
	nsXSI = "http://www.w3.org/2001/XMLSchema-instance"
	nsXSD = "http://www.w3.org/2001/XMLSchema"

	vaultServiceCreate = "CREATE"
)

// ChargeRequest builds and submits hosted sale and authorization requests.
type ChargeRequest struct {
	*Client
}

// NewChargeRequest builds a charge request client
func NewChargeRequest(cfg *config.Config, opts ...Option) (*ChargeRequest, error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &ChargeRequest{Client: c}, nil
}

// RequestID implements RequestClient
func (*ChargeRequest) RequestID() string { return RequestCharge }

// UISale builds the Request_v1 document and returns the tokenized envelope.
// capture selects a sale (true) or an authorization only (false).
func (r *ChargeRequest) UISale(ctx context.Context, tx Transaction, customer Customer, capture bool, ui UISettings) (string, error) {
	doc, err := r.BuildUISale(tx, customer, capture, ui)
	if err != nil {
		return "", err
	}
	return r.GetTokenizedRequest(ctx, doc)
}

// BuildUISale assembles the Request_v1 document without sending it. A
// transaction missing Reference1 or Amount yields a *gwerr.ArgumentError
// naming each missing field.
func (r *ChargeRequest) BuildUISale(tx Transaction, customer Customer, capture bool, ui UISettings) (*etree.Document, error) {
	missing, err := validation.Missing(tx)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &gwerr.ArgumentError{Missing: missing}
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	root := doc.CreateElement("Request_v1")
	root.CreateAttr("xmlns:xsi", nsXSI)
	root.CreateAttr("xmlns:xsd", nsXSD)

	application := root.CreateElement("Application")
	addText(application, "ApplicationID", r.applicationID)
	addText(application, "LanguageID", r.languageID)

	paymentType := root.CreateElement("Payments").CreateElement("PaymentType")

	merchant := paymentType.CreateElement("Merchant")
	addText(merchant, "MerchantID", r.merchantID)
	addText(merchant, "MerchantKey", r.merchantKey)

	base := paymentType.CreateElement("TransactionBase")
	if tx.TransactionID != "" {
		addText(base, "TransactionID", tx.TransactionID)
	}
	txType := TransactionTypeAuth
	if capture {
		txType = TransactionTypeSale
	}
	addText(base, "TransactionType", txType)
	addText(base, "Reference1", tx.Reference1)
	addText(base, "Amount", tx.Amount)

	addCustomer(paymentType.CreateElement("Customer"), customer)

	addText(paymentType.CreateElement("VaultStorage"), "Service", vaultServiceCreate)

	single := root.CreateElement("UI").CreateElement("SinglePayment")

	uiBase := single.CreateElement("TransactionBase")
	addFieldState(uiBase, "Reference1", false, true)
	addFieldState(uiBase, "SubtotalAmount", false, true)
	addFieldState(uiBase, "TaxAmount", false, false)
	addFieldState(uiBase, "ShippingAmount", false, false)

	uiCustomer := single.CreateElement("Customer")
	uiName := uiCustomer.CreateElement("Name")
	for _, tag := range nameFields {
		addFieldState(uiName, tag, ui.EditCustomer, true)
	}
	uiAddress := uiCustomer.CreateElement("Address")
	for _, tag := range addressFields {
		addFieldState(uiAddress, tag, ui.EditCustomer, true)
	}
	for _, tag := range []string{"Email", "Telephone", "CustomerNumber"} {
		addFieldState(uiAddress, tag, false, false)
	}

	return doc, nil
}

var (
	nameFields    = []string{"FirstName", "MI", "LastName"}
	addressFields = []string{"AddressLine1", "AddressLine2", "City", "State", "ZipCode", "Country"}
)

func addCustomer(parent *etree.Element, customer Customer) {
	n := customer.Name
	name := parent.CreateElement("Name")
	for i, v := range []string{n.FirstName, n.MI, n.LastName} {
		addText(name, nameFields[i], v)
	}

	a := customer.Address
	address := parent.CreateElement("Address")
	for i, v := range []string{a.AddressLine1, a.AddressLine2, a.City, a.State, a.ZipCode, a.Country} {
		addText(address, addressFields[i], v)
	}
}

func addText(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

// addFieldState writes the Enabled/Visible pair for one hosted-page field.
func addFieldState(parent *etree.Element, tag string, enabled, visible bool) {
	el := parent.CreateElement(tag)
	addText(el, "Enabled", strconv.FormatBool(enabled))
	addText(el, "Visible", strconv.FormatBool(visible))
}
