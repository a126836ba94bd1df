package services

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
	"github.com/ruralpay/ledger/internal/models"
)

// ISO20022Service renders completed transfers as pacs.008 credit transfers.
type ISO20022Service struct {
	currency string
	bic      string
}

func NewISO20022Service(currency, bic string) *ISO20022Service {
	if currency == "" {
		currency = "EUR"
	}
	return &ISO20022Service{currency: currency, bic: bic}
}

// ExportTransfer returns the XML document for tx. Only completed transfers
// can be exported.
func (iso *ISO20022Service) ExportTransfer(tx *models.Transaction) (string, error) {
	if tx == nil {
		return "", fmt.Errorf("%w: transaction is required", models.ErrValidation)
	}
	if tx.Type() != models.TransactionTransfer {
		return "", fmt.Errorf("%w: only transfers can be exported, %s is a %s", models.ErrValidation, tx.ID(), tx.Type())
	}
	if !tx.Successful() {
		return "", fmt.Errorf("%w: transaction %s is %s", models.ErrValidation, tx.ID(), tx.Status())
	}

	doc, err := iso.CreatePacs008(tx)
	if err != nil {
		return "", err
	}
	return iso.ConvertToXML(doc)
}

// CreatePacs008 creates a pacs.008 FIToFICustomerCreditTransfer message
func (iso *ISO20022Service) CreatePacs008(tx *models.Transaction) (*pacs_v08.FIToFICustomerCreditTransferV08, error) {
	msgId := uuid.New().String()
	creDtTm := time.Now()
	settlementDate := tx.Timestamp()
	amount := pacs_v08.ActiveCurrencyAndAmount{
		Ccy:   common.ActiveCurrencyCode(iso.currency),
		Value: tx.Amount().InexactFloat64(),
	}

	doc := &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:             common.Max35Text(msgId),
			CreDtTm:           common.ISODateTime(creDtTm),
			NbOfTxs:           "1",
			TtlIntrBkSttlmAmt: &amount,
			IntrBkSttlmDt:     (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "INDA", // settled on the books of this ledger
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    maxText35(tx.ID()),
					EndToEndId: common.Max35Text(tx.ID()),
					TxId:       maxText35(tx.ID()),
				},
				IntrBkSttlmAmt: amount,
				IntrBkSttlmDt:  (*common.ISODate)(&settlementDate),
				ChrgBr:         "SLEV",
				DbtrAgt:        iso.agent(),
				Dbtr: pacs_v08.PartyIdentification135{
					Nm: maxText140(tx.Source()),
				},
				CdtrAgt: iso.agent(),
				Cdtr: pacs_v08.PartyIdentification135{
					Nm: maxText140(tx.Destination()),
				},
			},
		},
	}

	return doc, nil
}

// ConvertToXML converts ISO20022 document to XML string
func (iso *ISO20022Service) ConvertToXML(doc interface{}) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}

func (iso *ISO20022Service) agent() pacs_v08.BranchAndFinancialInstitutionIdentification6 {
	bic := common.BICFIDec2014Identifier(iso.bic)
	return pacs_v08.BranchAndFinancialInstitutionIdentification6{
		FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
			BICFI: &bic,
		},
	}
}

func maxText35(s string) *common.Max35Text {
	v := common.Max35Text(s)
	return &v
}

func maxText140(s string) *common.Max140Text {
	v := common.Max140Text(s)
	return &v
}
