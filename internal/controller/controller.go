package controller

import (
	appcontext "github.com/mobiliza/peticoes/internal/app_context"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	Index     *IndexController
	Petition  *PetitionController
	Signature *SignatureController
	LinkPage  *LinkPageController
	File      *FileController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	return &Controller{
		Index:     &IndexController{baseController: bc},
		Petition:  &PetitionController{baseController: bc},
		Signature: &SignatureController{baseController: bc},
		LinkPage:  &LinkPageController{baseController: bc},
		File:      &FileController{baseController: bc},
	}
}
