package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a new courier on
// the roster. New couriers start out available.
//
// Example:
//
//	plate := "ABC123"
//	cmd, err := NewCreateCourierCommand("Carlos Perez", "3111111111", "88221100", &plate)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewCreateCourierCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create courier: %w", err)
//	}
//	fmt.Printf("Created courier with ID: %s", cmd.CourierID())
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID    kernel.UUID
	name         string
	phone        string
	nationalID   string
	vehiclePlate *string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a new courier.
// Automatically generates a unique ID for the courier.
// Validates that name, phone and national ID are not empty.
func NewCreateCourierCommand(name, phone, nationalID string, vehiclePlate *string) (CreateCourierCommand, error) {
	command := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCourierID(kernel.NewUUID()),
		command.setName(name),
		command.setPhone(phone),
		command.setNationalID(nationalID),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	command.vehiclePlate = vehiclePlate

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the generated identifier for the new courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Phone returns the courier's contact phone.
func (c CreateCourierCommand) Phone() string {
	return c.phone
}

// NationalID returns the courier's national identity number.
func (c CreateCourierCommand) NationalID() string {
	return c.nationalID
}

// VehiclePlate returns the optional vehicle plate.
func (c CreateCourierCommand) VehiclePlate() *string {
	return c.vehiclePlate
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredError("courierID")
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}

	c.phone = phone
	return nil
}

func (c *CreateCourierCommand) setNationalID(nationalID string) error {
	if nationalID == "" {
		return errs.NewValueIsRequiredError("nationalID")
	}

	c.nationalID = nationalID
	return nil
}
