package models

import "slices"

// Document is the whole persisted application state.
type Document struct {
	MenuItems   []MenuItem  `json:"menuItems"`
	Orders      []Order     `json:"orders"`
	LastOrderID int         `json:"lastOrderId"`
	Expenses    []Expense   `json:"expenses"`
	AppSettings AppSettings `json:"appSettings"`
	Users       []User      `json:"users"`
	AuditLogs   []AuditLog  `json:"auditLogs,omitempty"`
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.MenuItems = slices.Clone(d.MenuItems)
	out.Expenses = slices.Clone(d.Expenses)
	out.Users = slices.Clone(d.Users)

	if d.Orders != nil {
		out.Orders = make([]Order, len(d.Orders))
		for i, o := range d.Orders {
			o.Items = slices.Clone(o.Items)
			out.Orders[i] = o
		}
	}
	if d.AuditLogs != nil {
		out.AuditLogs = make([]AuditLog, len(d.AuditLogs))
		for i, l := range d.AuditLogs {
			l.Before = slices.Clone(l.Before)
			l.After = slices.Clone(l.After)
			out.AuditLogs[i] = l
		}
	}
	return &out
}

func (d *Document) MenuItemIndex(id string) int {
	for i := range d.MenuItems {
		if d.MenuItems[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) UserIndex(id string) int {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) ExpenseIndex(id string) int {
	for i := range d.Expenses {
		if d.Expenses[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) AdminCount() int {
	n := 0
	for _, u := range d.Users {
		if u.Role == RoleAdmin {
			n++
		}
	}
	return n
}

// MaxOrderID returns the largest stored order id, or 0.
func (d *Document) MaxOrderID() int {
	highest := 0
	for _, o := range d.Orders {
		if o.ID > highest {
			highest = o.ID
		}
	}
	return highest
}
