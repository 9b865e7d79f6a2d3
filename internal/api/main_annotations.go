// @title           joe-advisor API
// @version         1.0
// @description     Bank product recommendations generated by a locally hosted language model.
// @BasePath        /api/v1
package api
