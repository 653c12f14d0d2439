package dto

// ErrorResponse cuerpo de error HTTP. El contrato de cable es deliberadamente
// grueso: un solo mensaje, sin detalle de storage (eso va al log).
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// ResultResponse envuelve el payload de las lecturas: {"result": ...}.
type ResultResponse struct {
	Result any `json:"result"`
}
