package dto

// AddBookRequest HTTP层入库请求
type AddBookRequest struct {
	Title       string `json:"title" binding:"max=200" example:"Dune"`
	Author      string `json:"author" binding:"max=100" example:"Frank Herbert"`
	ISBN        string `json:"isbn" binding:"max=20" example:"9780441172719"`
	Category    string `json:"category" example:"Fiction"`
	ItemType    string `json:"itemType" example:"Book"`
	TotalCopies int    `json:"totalCopies" binding:"min=0" example:"3"`
	PublishYear int    `json:"publishYear" binding:"min=0" example:"1965"`
	Publisher   string `json:"publisher" binding:"max=100"`
}

// UpdateBookRequest HTTP层修改请求，省略的字段不修改
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"max=200"`
	Author      string `json:"author" binding:"max=100"`
	ISBN        string `json:"isbn" binding:"max=20"`
	Category    string `json:"category"`
	ItemType    string `json:"itemType"`
	TotalCopies int    `json:"totalCopies" binding:"min=0"`
	PublishYear int    `json:"publishYear" binding:"min=0"`
	Publisher   string `json:"publisher" binding:"max=100"`
}
