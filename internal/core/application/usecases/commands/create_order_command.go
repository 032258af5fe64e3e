package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order.
// Encapsulates the client contact data, the destination, the order value and
// the commission percentage snapshotted at submission time.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, restaurantID, nil,
//	    "Ana Maria", "3001234567", "Calle 10 # 5-23", nil, nil, 50000, 20)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, reporter)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID           kernel.UUID
	restaurantID      kernel.UUID
	createdBy         *kernel.UUID
	clientName        string
	clientPhone       string
	deliveryAddress   string
	addressReference  *string
	notes             *string
	orderValue        kernel.Money
	commissionPercent kernel.CommissionPercent

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that identifiers are valid, client and address fields are not
// empty, the order value is positive and the percentage is within range.
func NewCreateOrderCommand(orderID kernel.UUID, restaurantID kernel.UUID, createdBy *kernel.UUID,
	clientName, clientPhone, deliveryAddress string, addressReference, notes *string,
	orderValue int64, commissionPercent float64) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRestaurantID(restaurantID),
		command.setCreatedBy(createdBy),
		command.setClientName(clientName),
		command.setClientPhone(clientPhone),
		command.setDeliveryAddress(deliveryAddress),
		command.setOrderValue(orderValue),
		command.setCommissionPercent(commissionPercent),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	command.addressReference = addressReference
	command.notes = notes

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the identifier of the submitting restaurant.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// CreatedBy returns the identifier of the submitting user, when known.
func (c CreateOrderCommand) CreatedBy() *kernel.UUID {
	return c.createdBy
}

// ClientName returns the recipient's name.
func (c CreateOrderCommand) ClientName() string {
	return c.clientName
}

// ClientPhone returns the recipient's phone number.
func (c CreateOrderCommand) ClientPhone() string {
	return c.clientPhone
}

// DeliveryAddress returns the destination address.
func (c CreateOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// AddressReference returns the optional address landmark hint.
func (c CreateOrderCommand) AddressReference() *string {
	return c.addressReference
}

// Notes returns the optional free-form order notes.
func (c CreateOrderCommand) Notes() *string {
	return c.notes
}

// OrderValue returns the order value.
func (c CreateOrderCommand) OrderValue() kernel.Money {
	return c.orderValue
}

// CommissionPercent returns the commission percentage snapshotted for the order.
func (c CreateOrderCommand) CommissionPercent() kernel.CommissionPercent {
	return c.commissionPercent
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("orderID")
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("restaurantID")
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setCreatedBy(createdBy *kernel.UUID) error {
	if createdBy == nil {
		return nil
	}
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsInvalidError("createdBy")
	}

	c.createdBy = createdBy
	return nil
}

func (c *CreateOrderCommand) setClientName(clientName string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}

	c.clientName = clientName
	return nil
}

func (c *CreateOrderCommand) setClientPhone(clientPhone string) error {
	if clientPhone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}

	c.clientPhone = clientPhone
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(deliveryAddress string) error {
	if deliveryAddress == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = deliveryAddress
	return nil
}

func (c *CreateOrderCommand) setOrderValue(orderValue int64) error {
	value, err := kernel.NewMoney(orderValue)
	if err != nil {
		return err
	}

	c.orderValue = value
	return nil
}

func (c *CreateOrderCommand) setCommissionPercent(commissionPercent float64) error {
	percent, err := kernel.NewCommissionPercent(commissionPercent)
	if err != nil {
		return err
	}

	c.commissionPercent = percent
	return nil
}
