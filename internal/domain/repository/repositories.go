package repository

// Repositories agrupa los puertos de persistencia. El TxRunner entrega una instancia atada a
// la transacción; fuera de ella se usa la atada al pool.
type Repositories struct {
	Products       ProductRepository
	Operations     OperationRepository
	Contacts       ContactRepository
	Movements      MovementRepository
	Payments       PaymentRepository
	PaymentMethods PaymentMethodRepository
	Accounts       AccountRepository
	Entries        AccountEntryRepository
}
