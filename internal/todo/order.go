package todo

// Order คือทิศทางการเรียงของ list (เรียงตาม id)
type Order int

const (
	OrderAsc Order = iota
	OrderDesc
)

// ParseOrder รับค่าจาก query ?order=
// "DESC" (case-sensitive) เท่านั้นที่เป็น OrderDesc ค่าอื่นทั้งหมดคือ OrderAsc
func ParseOrder(s string) Order {
	if s == "DESC" {
		return OrderDesc
	}
	return OrderAsc
}

func (o Order) String() string {
	if o == OrderDesc {
		return "DESC"
	}
	return "ASC"
}
