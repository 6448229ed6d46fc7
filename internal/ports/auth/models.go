package auth

// Claims representa la información extraída del token: identidad más
// el rol y la unidad que alimentan el filtro de visibilidad.
type Claims struct {
	UserID string
	Email  string
	Role   string
	Unit   string
}
