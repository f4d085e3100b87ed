package domain

import "time"

// AuditEvent records who did what to which entity. Recording is
// fire-and-forget: a failed write never fails the operation it describes.
type AuditEvent struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspaceId"`
	ActorUID    string         `json:"actorUid,omitempty"`
	Action      string         `json:"action"`
	Entity      string         `json:"entity"`
	EntityID    string         `json:"entityId,omitempty"`
	Summary     string         `json:"summary,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Audit actions recorded by the engine.
const (
	AuditStatementGenerate = "statement.generate"
	AuditStatementAmount   = "statement.amount"
	AuditStatementPay      = "statement.pay"
	AuditStatementReopen   = "statement.reopen"

	AuditBillPaymentsGenerate = "bill_payment.generate"
	AuditBillPaymentPaid      = "bill_payment.paid"
	AuditBillPaymentPending   = "bill_payment.pending"
	AuditBillPaymentSkipped   = "bill_payment.skipped"

	AuditTransactionCreate = "transaction.create"
	AuditTransactionDelete = "transaction.delete"

	AuditReconcileRun = "reconcile.run"
)
