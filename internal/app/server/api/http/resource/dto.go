package resource

import (
	"stockroom/internal/domain/resource"
)

type listInput struct {
	Q    string `query:"q" example:"widget" doc:"Case-insensitive substring filter over the resource's text fields"`
	Sort string `query:"sort" example:"-stock" doc:"Field to sort by, prefixed with '-' for descending order"`
}

type listOutput struct {
	Body []resource.Record
}

type createInput struct {
	Body resource.Fields
}

type findInput struct {
	ID int64 `path:"id" example:"1" doc:"Record ID"`
}

type updateInput struct {
	ID   int64 `path:"id" example:"1" doc:"Record ID"`
	Body resource.Fields
}

type deleteInput struct {
	ID int64 `path:"id" example:"1" doc:"Record ID"`
}

// recordOutput returns the record as one flat JSON object, id included.
type recordOutput struct {
	Body resource.Record
}

type statusOutput struct {
	Body statusResponse
}

type statusResponse struct {
	Status string `json:"status" example:"ok"`
}

type definitionsOutput struct {
	Body []resource.Definition
}
